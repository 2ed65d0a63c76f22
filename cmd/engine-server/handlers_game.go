package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"faction-arena/internal/engine"
)

// Game endpoints act on behalf of the authenticated game; the game
// address comes from the credential, never the request body.

func startGameHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r)
		var body struct {
			SessionID uint64 `json:"session_id"`
			Player1   string `json:"player1"`
			Player2   string `json:"player2"`
			Wager1    string `json:"wager1"`
			Wager2    string `json:"wager2"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Player1 == "" || body.Player2 == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		w1, ok1 := parseAmount(body.Wager1)
		w2, ok2 := parseAmount(body.Wager2)
		if !ok1 || !ok2 {
			writeHTTPError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
		err := e.StartGame(r.Context(), game.GameAddr, body.SessionID, body.Player1, body.Player2, w1, w2)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "session_id": body.SessionID})
	}
}

func endGameHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r)
		var body struct {
			SessionID uint64         `json:"session_id"`
			Proof     string         `json:"proof"`
			Outcome   engine.Outcome `json:"outcome"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		proof, err := base64.StdEncoding.DecodeString(body.Proof)
		if err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := e.EndGame(r.Context(), game.GameAddr, body.SessionID, proof, body.Outcome); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "session_id": body.SessionID})
	}
}
