package engine

import (
	"math/big"
	"testing"

	"faction-arena/internal/store"
)

func TestWinningFactionEmptyStandings(t *testing.T) {
	if got := winningFaction(nil); got != 0 {
		t.Fatalf("empty standings winner = %d, want 0", got)
	}
}

func TestWinningFactionHighestTotal(t *testing.T) {
	standings := []store.FactionStanding{
		{FactionID: 0, Contributed: big.NewInt(100)},
		{FactionID: 1, Contributed: big.NewInt(300)},
		{FactionID: 2, Contributed: big.NewInt(200)},
	}
	if got := winningFaction(standings); got != 1 {
		t.Fatalf("winner = %d, want 1", got)
	}
}

func TestWinningFactionTieGoesToLowestID(t *testing.T) {
	standings := []store.FactionStanding{
		{FactionID: 0, Contributed: big.NewInt(50)},
		{FactionID: 1, Contributed: big.NewInt(300)},
		{FactionID: 2, Contributed: big.NewInt(300)},
	}
	if got := winningFaction(standings); got != 1 {
		t.Fatalf("tied winner = %d, want 1", got)
	}
}

func TestWinningFactionAllZero(t *testing.T) {
	standings := []store.FactionStanding{
		{FactionID: 1, Contributed: big.NewInt(0)},
		{FactionID: 2, Contributed: big.NewInt(0)},
	}
	if got := winningFaction(standings); got != 0 {
		t.Fatalf("all-zero winner = %d, want 0", got)
	}
}

func TestValidFaction(t *testing.T) {
	for f := int32(0); f < NumFactions; f++ {
		if !ValidFaction(f) {
			t.Fatalf("faction %d rejected", f)
		}
	}
	for _, f := range []int32{-1, NumFactions, 99} {
		if ValidFaction(f) {
			t.Fatalf("faction %d accepted", f)
		}
	}
}
