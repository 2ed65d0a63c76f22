package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"faction-arena/internal/engine"
	"faction-arena/internal/store"

	"github.com/go-chi/chi/v5"
)

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func registerPlayerHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Address string `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Address == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		apiKey, err := newAPIKey("fa")
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		if err := e.RegisterAccount(r.Context(), body.Address, store.HashAPIKey(apiKey)); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"address": body.Address,
			"api_key": apiKey,
		})
	}
}

func selectFactionHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := playerFromContext(r)
		var body struct {
			Faction int32 `json:"faction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := e.SelectFaction(r.Context(), account.Address, body.Faction); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "faction": body.Faction})
	}
}

func getPlayerHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")
		p, err := e.GetPlayer(r.Context(), address)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"address":                p.Address,
			"selected_faction":       p.SelectedFaction,
			"time_multiplier_anchor": p.TimeMultiplierAnchor,
			"last_epoch_balance":     amountString(p.LastEpochBalance),
		})
	}
}

func getEpochPlayerHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")
		ep, err := e.GetEpochPlayer(r.Context(), address)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, epochPlayerView(ep))
	}
}

func epochPlayerView(ep *store.EpochPlayer) map[string]any {
	out := map[string]any{
		"epoch_number":         ep.EpochNumber,
		"address":              ep.Address,
		"balance_snapshot":     amountString(ep.EpochBalanceSnapshot),
		"available_fp":         amountString(ep.AvailableFP),
		"total_fp_contributed": amountString(ep.TotalFPContributed),
	}
	if ep.EpochFaction != nil {
		out["epoch_faction"] = *ep.EpochFaction
	} else {
		out["epoch_faction"] = nil
	}
	return out
}

func getEpochHandler(e *engine.Engine, current bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var number *int64
		if !current {
			n, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
			if err != nil || n < 0 {
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			number = &n
		}
		view, err := e.GetEpoch(r.Context(), number)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		standings := make([]map[string]any, 0, len(view.Standings))
		for _, s := range view.Standings {
			standings = append(standings, map[string]any{
				"faction":     s.FactionID,
				"contributed": amountString(s.Contributed),
			})
		}
		out := map[string]any{
			"epoch_number": view.EpochNumber,
			"start_time":   view.StartTime,
			"end_time":     view.EndTime,
			"is_finalized": view.IsFinalized,
			"reward_pool":  amountString(view.RewardPool),
			"standings":    standings,
		}
		if view.WinningFaction != nil {
			out["winning_faction"] = *view.WinningFaction
		} else {
			out["winning_faction"] = nil
		}
		writeJSON(w, out)
	}
}

func getClaimHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := playerFromContext(r)
		number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
		if err != nil || number < 0 {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		c, err := e.ClaimFor(r.Context(), account.Address, number)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"address":      c.Address,
			"epoch_number": c.EpochNumber,
			"amount":       amountString(c.Amount),
			"claimed_at":   c.ClaimedAt,
		})
	}
}

func cycleEpochHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next, err := e.CycleEpoch(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "current_epoch": next})
	}
}

func claimRewardHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := playerFromContext(r)
		number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
		if err != nil || number < 0 {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		amount, err := e.ClaimEpochReward(r.Context(), account.Address, number)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"ok":           true,
			"epoch_number": number,
			"amount":       amountString(amount),
		})
	}
}
