package engine

import "fmt"

// Outcome is the settlement record a game submits when a session ends.
// Winner reports whether Player1 won; the two wager fields echo the
// escrow recorded at session start so the proof binds to the money.
type Outcome struct {
	GameAddr  string `json:"game_addr"`
	SessionID uint64 `json:"session_id"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	Winner    bool   `json:"player1_won"`
}

// Verifier checks that a proof attests to an outcome. Implementations
// return an error when the proof does not verify; the engine wraps it
// in ErrProofVerificationFailed.
type Verifier interface {
	Verify(proof []byte, outcome Outcome) error
}

// NonEmptyProofVerifier accepts any non-empty proof. It stands in
// until games ship real attestations; the outcome is still
// cross-checked against the stored session either way.
type NonEmptyProofVerifier struct{}

func (NonEmptyProofVerifier) Verify(proof []byte, _ Outcome) error {
	if len(proof) == 0 {
		return fmt.Errorf("empty proof")
	}
	return nil
}
