package main

import (
	"math/rand"
	"testing"
)

func TestPlayRoundBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		r := playRound(rnd)
		for _, v := range []int{r.Secret, r.Guess1, r.Guess2} {
			if v < 1 || v > guessUpperBound {
				t.Fatalf("value %d out of range", v)
			}
		}
	}
}

func TestPlayRoundWinnerIsCloser(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		r := playRound(rnd)
		d1, d2 := distance(r.Guess1, r.Secret), distance(r.Guess2, r.Secret)
		want := d1 < d2
		if r.Player1Won != want {
			t.Fatalf("secret=%d g1=%d g2=%d: player1_won=%v, want %v",
				r.Secret, r.Guess1, r.Guess2, r.Player1Won, want)
		}
	}
}

func TestTranscriptNonEmpty(t *testing.T) {
	r := roundResult{Secret: 3, Guess1: 2, Guess2: 9}
	if len(r.transcript()) == 0 {
		t.Fatalf("empty transcript")
	}
}
