package main

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"faction-arena/internal/engine"
	"faction-arena/internal/store"
)

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeEngineError maps a failed engine operation onto an HTTP status
// and the operation's error code.
func writeEngineError(w http.ResponseWriter, err error) {
	writeHTTPError(w, statusFor(err), codeFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidFaction),
		errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrInvalidGameOutcome),
		errors.Is(err, engine.ErrProofVerificationFailed),
		errors.Is(err, engine.ErrOverflow):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrGameNotWhitelisted),
		errors.Is(err, engine.ErrNotWinningFaction):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrPlayerNotFound),
		errors.Is(err, engine.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrFactionNotSelected),
		errors.Is(err, engine.ErrSessionAlreadyExists),
		errors.Is(err, engine.ErrInsufficientFactionPoints),
		errors.Is(err, engine.ErrEpochNotReady),
		errors.Is(err, engine.ErrEpochAlreadyFinalized),
		errors.Is(err, engine.ErrEpochNotFinalized),
		errors.Is(err, engine.ErrRewardAlreadyClaimed),
		errors.Is(err, engine.ErrNoRewardsAvailable),
		errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, engine.ErrFeeVault),
		errors.Is(err, engine.ErrSwap),
		errors.Is(err, engine.ErrTransfer):
		return http.StatusBadGateway
	case errors.Is(err, engine.ErrEnginePaused):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error) string {
	for _, sentinel := range []error{
		engine.ErrInvalidFaction,
		engine.ErrInvalidAmount,
		engine.ErrInvalidGameOutcome,
		engine.ErrProofVerificationFailed,
		engine.ErrOverflow,
		engine.ErrGameNotWhitelisted,
		engine.ErrNotWinningFaction,
		engine.ErrPlayerNotFound,
		engine.ErrSessionNotFound,
		engine.ErrFactionNotSelected,
		engine.ErrSessionAlreadyExists,
		engine.ErrInsufficientFactionPoints,
		engine.ErrEpochNotReady,
		engine.ErrEpochAlreadyFinalized,
		engine.ErrEpochNotFinalized,
		engine.ErrRewardAlreadyClaimed,
		engine.ErrNoRewardsAvailable,
		engine.ErrFeeVault,
		engine.ErrSwap,
		engine.ErrTransfer,
		engine.ErrEnginePaused,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, store.ErrConflict):
		return "conflict"
	}
	return "internal_error"
}

// parseAmount reads a scaled token amount from its decimal string
// form.
func parseAmount(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return n, true
}

func amountString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

func parsePagination(r *http.Request) (int, int) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
