package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"faction-arena/internal/engine"
	"faction-arena/internal/store"
)

func TestWriteHTTPErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeHTTPError(rec, http.StatusConflict, "session_already_exists")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "session_already_exists" {
		t.Fatalf("error code = %q", body["error"])
	}
}

func TestEngineErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{engine.ErrInvalidFaction, http.StatusBadRequest, "invalid_faction"},
		{engine.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
		{engine.ErrOverflow, http.StatusBadRequest, "overflow_error"},
		{engine.ErrGameNotWhitelisted, http.StatusForbidden, "game_not_whitelisted"},
		{engine.ErrNotWinningFaction, http.StatusForbidden, "not_winning_faction"},
		{engine.ErrPlayerNotFound, http.StatusNotFound, "player_not_found"},
		{engine.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
		{engine.ErrFactionNotSelected, http.StatusConflict, "faction_not_selected"},
		{engine.ErrSessionAlreadyExists, http.StatusConflict, "session_already_exists"},
		{engine.ErrInsufficientFactionPoints, http.StatusConflict, "insufficient_faction_points"},
		{engine.ErrEpochNotReady, http.StatusConflict, "epoch_not_ready"},
		{engine.ErrEpochNotFinalized, http.StatusConflict, "epoch_not_finalized"},
		{engine.ErrRewardAlreadyClaimed, http.StatusConflict, "reward_already_claimed"},
		{engine.ErrFeeVault, http.StatusBadGateway, "fee_vault_error"},
		{engine.ErrSwap, http.StatusBadGateway, "swap_error"},
		{engine.ErrTransfer, http.StatusBadGateway, "transfer_failed"},
		{engine.ErrEnginePaused, http.StatusServiceUnavailable, "engine_paused"},
		{store.ErrNotFound, http.StatusNotFound, "not_found"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.status {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.status)
		}
		if got := codeFor(tc.err); got != tc.code {
			t.Fatalf("codeFor(%v) = %q, want %q", tc.err, got, tc.code)
		}
	}
	// Wrapped errors map the same as their sentinel.
	wrapped := fmt.Errorf("%w: upstream said no", engine.ErrFeeVault)
	if got := statusFor(wrapped); got != http.StatusBadGateway {
		t.Fatalf("wrapped statusFor = %d, want %d", got, http.StatusBadGateway)
	}
}

func TestParseAmount(t *testing.T) {
	if _, ok := parseAmount(""); ok {
		t.Fatalf("empty string parsed")
	}
	if _, ok := parseAmount("12.5"); ok {
		t.Fatalf("decimal point parsed")
	}
	if _, ok := parseAmount("abc"); ok {
		t.Fatalf("garbage parsed")
	}
	n, ok := parseAmount("-3")
	if !ok || n.Int64() != -3 {
		t.Fatalf("negative parse = %v %v", n, ok)
	}
	n, ok = parseAmount("170141183460469231731687303715884105727")
	if !ok {
		t.Fatalf("big amount rejected")
	}
	if n.String() != "170141183460469231731687303715884105727" {
		t.Fatalf("big amount round trip = %s", n)
	}
}

func TestCheckAdminAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/games", nil)
	if checkAdminAuth(req, "secret") {
		t.Fatalf("no credentials accepted")
	}
	req.Header.Set("X-Admin-Key", "secret")
	if !checkAdminAuth(req, "secret") {
		t.Fatalf("header key rejected")
	}
	req.Header.Del("X-Admin-Key")
	req.Header.Set("Authorization", "Bearer secret")
	if !checkAdminAuth(req, "secret") {
		t.Fatalf("bearer key rejected")
	}
	req.Header.Set("Authorization", "Bearer wrong")
	if checkAdminAuth(req, "secret") {
		t.Fatalf("wrong bearer accepted")
	}
}
