package engine

import (
	"math/big"
	"testing"

	"faction-arena/internal/fixedpoint"
)

func fp(units int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(units), big.NewInt(fixedpoint.Scalar))
}

func TestTimeMultiplierFreshDeposit(t *testing.T) {
	got := timeMultiplier(0)
	if got.Cmp(big.NewInt(fixedpoint.Scalar)) != 0 {
		t.Fatalf("fresh deposit multiplier = %s, want %d", got, fixedpoint.Scalar)
	}
}

func TestTimeMultiplierAtPivot(t *testing.T) {
	// At exactly the pivot age half the max bonus has accrued.
	got := timeMultiplier(timePivotSecs)
	want := big.NewInt(fixedpoint.Scalar + maxTimeBonus/2)
	if got.Cmp(want) != 0 {
		t.Fatalf("pivot-age multiplier = %s, want %s", got, want)
	}
}

func TestTimeMultiplierSaturates(t *testing.T) {
	got := timeMultiplier(1_000_000 * timePivotSecs)
	cap := big.NewInt(2 * fixedpoint.Scalar)
	if got.Cmp(cap) >= 0 {
		t.Fatalf("multiplier %s reached the 2.0x cap", got)
	}
	if got.Cmp(big.NewInt(2*fixedpoint.Scalar-100)) < 0 {
		t.Fatalf("multiplier %s far from the 2.0x asymptote", got)
	}
}

func TestTimeMultiplierNegativeAgeClamped(t *testing.T) {
	if got := timeMultiplier(-60); got.Cmp(big.NewInt(fixedpoint.Scalar)) != 0 {
		t.Fatalf("negative age multiplier = %s, want neutral", got)
	}
}

func TestAmountMultiplierAtPivot(t *testing.T) {
	got := amountMultiplier(fp(10_000))
	want := big.NewInt(fixedpoint.Scalar + maxAmountBonus/2)
	if got.Cmp(want) != 0 {
		t.Fatalf("pivot-balance multiplier = %s, want %s", got, want)
	}
}

func TestAmountMultiplierZeroAndNegative(t *testing.T) {
	for _, b := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		if got := amountMultiplier(b); got.Cmp(big.NewInt(fixedpoint.Scalar)) != 0 {
			t.Fatalf("multiplier for %v = %s, want neutral", b, got)
		}
	}
}

func TestFactionPointsZeroBalance(t *testing.T) {
	got, err := factionPoints(big.NewInt(0), timePivotSecs)
	if err != nil {
		t.Fatalf("factionPoints: %v", err)
	}
	if got.Sign() != 0 {
		t.Fatalf("zero balance earned %s points", got)
	}
}

func TestFactionPointsFreshSmallDeposit(t *testing.T) {
	// Tiny fresh deposit: both multipliers are effectively neutral.
	bal := fp(1)
	got, err := factionPoints(bal, 0)
	if err != nil {
		t.Fatalf("factionPoints: %v", err)
	}
	// amount bonus on 1 unit against a 10k pivot floors to a sliver.
	if got.Cmp(bal) < 0 {
		t.Fatalf("points %s below balance %s", got, bal)
	}
	ceiling := new(big.Int).Add(bal, big.NewInt(fixedpoint.Scalar/1000))
	if got.Cmp(ceiling) > 0 {
		t.Fatalf("points %s exceed %s for a tiny fresh deposit", got, ceiling)
	}
}

func TestFactionPointsMonotonicInAge(t *testing.T) {
	bal := fp(5_000)
	young, err := factionPoints(bal, 60)
	if err != nil {
		t.Fatalf("factionPoints: %v", err)
	}
	old, err := factionPoints(bal, 10*timePivotSecs)
	if err != nil {
		t.Fatalf("factionPoints: %v", err)
	}
	if old.Cmp(young) <= 0 {
		t.Fatalf("older deposit earned %s, younger earned %s", old, young)
	}
}

func TestFactionPointsBoundedByMaxMultipliers(t *testing.T) {
	bal := fp(1_000_000)
	got, err := factionPoints(bal, 100*timePivotSecs)
	if err != nil {
		t.Fatalf("factionPoints: %v", err)
	}
	// 2.0x time cap times 1.5x amount cap.
	limit := new(big.Int).Mul(bal, big.NewInt(3))
	if got.Cmp(limit) >= 0 {
		t.Fatalf("points %s reached the 3x combined cap", got)
	}
}

func TestShouldResetAnchor(t *testing.T) {
	cases := []struct {
		name    string
		current *big.Int
		last    *big.Int
		want    bool
	}{
		{"no history", fp(100), big.NewInt(0), false},
		{"grew", fp(200), fp(100), false},
		{"just above half", new(big.Int).Add(fp(50), big.NewInt(1)), fp(100), false},
		{"exactly half", fp(50), fp(100), true},
		{"below half", fp(10), fp(100), true},
		{"drained", big.NewInt(0), fp(100), true},
	}
	for _, tc := range cases {
		got, err := shouldResetAnchor(tc.current, tc.last)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: reset = %v, want %v", tc.name, got, tc.want)
		}
	}
}
