package main

import (
	"fmt"
	"math/rand"
)

const guessUpperBound = 10

type roundResult struct {
	Secret     int
	Guess1     int
	Guess2     int
	Player1Won bool
}

// playRound draws a secret in [1, guessUpperBound] and a guess for
// each player. Closest guess wins; on an exact tie player 2 wins as
// the defender.
func playRound(rnd *rand.Rand) roundResult {
	secret := rnd.Intn(guessUpperBound) + 1
	g1 := rnd.Intn(guessUpperBound) + 1
	g2 := rnd.Intn(guessUpperBound) + 1
	return roundResult{
		Secret:     secret,
		Guess1:     g1,
		Guess2:     g2,
		Player1Won: distance(g1, secret) < distance(g2, secret),
	}
}

func distance(guess, secret int) int {
	if guess > secret {
		return guess - secret
	}
	return secret - guess
}

// transcript serializes the round for the settlement proof.
func (r roundResult) transcript() []byte {
	return []byte(fmt.Sprintf("secret=%d guess1=%d guess2=%d", r.Secret, r.Guess1, r.Guess2))
}
