package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"faction-arena/internal/config"
)

// guess-bot runs a number-guessing duel between two registered
// players and reports each round to the engine as a wagered session.

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.GameAPIKey == "" || cfg.Player1 == "" || cfg.Player2 == "" {
		log.Fatal("GAME_API_KEY, PLAYER1 and PLAYER2 are required")
	}

	client := &http.Client{Timeout: 15 * time.Second}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for round := 0; round < cfg.Rounds; round++ {
		sessionID := uint64(time.Now().UnixNano())
		result := playRound(rnd)
		log.Printf("round %d session %d: secret=%d p1=%d p2=%d p1_won=%v",
			round, sessionID, result.Secret, result.Guess1, result.Guess2, result.Player1Won)

		if err := startSession(client, cfg, sessionID); err != nil {
			log.Fatalf("start session %d: %v", sessionID, err)
		}
		if err := endSession(client, cfg, sessionID, result); err != nil {
			log.Fatalf("end session %d: %v", sessionID, err)
		}
	}
}

func startSession(client *http.Client, cfg config.BotConfig, sessionID uint64) error {
	wager := strconv.FormatInt(cfg.WagerFP, 10)
	return post(client, cfg, "/api/games/start", map[string]any{
		"session_id": sessionID,
		"player1":    cfg.Player1,
		"player2":    cfg.Player2,
		"wager1":     wager,
		"wager2":     wager,
	})
}

func endSession(client *http.Client, cfg config.BotConfig, sessionID uint64, result roundResult) error {
	proof := base64.StdEncoding.EncodeToString(result.transcript())
	return post(client, cfg, "/api/games/end", map[string]any{
		"session_id": sessionID,
		"proof":      proof,
		"outcome": map[string]any{
			"game_addr":   cfg.GameAddr,
			"session_id":  sessionID,
			"player1":     cfg.Player1,
			"player2":     cfg.Player2,
			"player1_won": result.Player1Won,
		},
	})
}

func post(client *http.Client, cfg config.BotConfig, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, cfg.EngineURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.GameAPIKey)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("%s: status %d (%s)", path, resp.StatusCode, errBody.Error)
	}
	return nil
}
