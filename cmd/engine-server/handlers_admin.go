package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"faction-arena/internal/engine"
	"faction-arena/internal/store"

	"github.com/go-chi/chi/v5"
)

func listGamesHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := e.ListGames(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		out := make([]map[string]any, 0, len(games))
		for _, g := range games {
			out = append(out, map[string]any{
				"game_addr": g.GameAddr,
				"added_at":  g.AddedAt,
			})
		}
		writeJSON(w, map[string]any{"items": out})
	}
}

// addGameHandler whitelists a game and returns its freshly minted API
// key. Re-adding rotates the key.
func addGameHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			GameAddr string `json:"game_addr"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.GameAddr == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		apiKey, err := newAPIKey("fag")
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		if err := e.AddGame(r.Context(), body.GameAddr, store.HashAPIKey(apiKey)); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"ok":        true,
			"game_addr": body.GameAddr,
			"api_key":   apiKey,
		})
	}
}

func removeGameHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameAddr := chi.URLParam(r, "game_addr")
		if gameAddr == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := e.RemoveGame(r.Context(), gameAddr); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func getConfigHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := e.GetConfig(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, configView(cfg))
	}
}

func updateConfigHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			VaultAddr         *string `json:"vault_addr"`
			SwapRouterAddr    *string `json:"swap_router_addr"`
			RewardSourceToken *string `json:"reward_source_token"`
			RewardPayoutToken *string `json:"reward_payout_token"`
			EpochDurationSecs *int64  `json:"epoch_duration_secs"`
			ReserveTokenIDs   []int32 `json:"reserve_token_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		cfg, err := e.UpdateConfig(r.Context(), engine.ConfigUpdate{
			VaultAddr:         body.VaultAddr,
			SwapRouterAddr:    body.SwapRouterAddr,
			RewardSourceToken: body.RewardSourceToken,
			RewardPayoutToken: body.RewardPayoutToken,
			EpochDurationSecs: body.EpochDurationSecs,
			ReserveTokenIDs:   body.ReserveTokenIDs,
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, configView(cfg))
	}
}

func configView(cfg *store.GlobalConfig) map[string]any {
	return map[string]any{
		"vault_addr":          cfg.VaultAddr,
		"swap_router_addr":    cfg.SwapRouterAddr,
		"reward_source_token": cfg.RewardSourceToken,
		"reward_payout_token": cfg.RewardPayoutToken,
		"epoch_duration_secs": cfg.EpochDurationSecs,
		"reserve_token_ids":   cfg.ReserveTokenIDs,
		"is_paused":           cfg.Paused,
	}
}

func setPausedHandler(e *engine.Engine, paused bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := e.SetPaused(r.Context(), paused); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "is_paused": paused})
	}
}

func migratePlayerHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")
		migrated, err := e.MigratePlayer(r.Context(), address)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "migrated": migrated})
	}
}

func ledgerHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		f := store.LedgerFilter{
			Address: r.URL.Query().Get("address"),
		}
		if v := r.URL.Query().Get("epoch"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			f.Epoch = &n
		}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		items, err := e.LedgerEntries(r.Context(), f, limit, offset)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		out := make([]map[string]any, 0, len(items))
		for _, it := range items {
			out = append(out, map[string]any{
				"id":           it.ID,
				"address":      it.Address,
				"epoch_number": it.EpochNumber,
				"entry_type":   it.EntryType,
				"amount":       amountString(it.Amount),
				"ref_type":     it.RefType,
				"ref_id":       it.RefID,
				"created_at":   it.CreatedAt,
			})
		}
		writeJSON(w, map[string]any{
			"items":  out,
			"limit":  limit,
			"offset": offset,
		})
	}
}
