package engine

import (
	"math/big"

	"faction-arena/internal/fixedpoint"
)

// Multiplier curves. Both bonuses are saturating rational curves:
// time approaches +100% as the deposit ages past the 30-day pivot,
// amount approaches +50% as the balance grows past the 10k pivot.
const (
	timePivotSecs int64 = 30 * 24 * 60 * 60

	maxTimeBonus   int64 = fixedpoint.Scalar     // +1.0x
	maxAmountBonus int64 = fixedpoint.Scalar / 2 // +0.5x
)

var amountPivot = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(fixedpoint.Scalar))

// withdrawalResetThreshold is the fraction of the last recorded
// balance below which the time multiplier anchor resets. 0.5 scaled.
const withdrawalResetThreshold int64 = fixedpoint.Scalar / 2

// timeMultiplier returns the scaled time multiplier for a deposit of
// the given age: 1.0 + maxTimeBonus * age / (age + pivot).
func timeMultiplier(ageSecs int64) *big.Int {
	if ageSecs < 0 {
		ageSecs = 0
	}
	age := big.NewInt(ageSecs)
	num := new(big.Int).Mul(big.NewInt(maxTimeBonus), age)
	den := new(big.Int).Add(age, big.NewInt(timePivotSecs))
	bonus := num.Quo(num, den)
	return bonus.Add(bonus, big.NewInt(fixedpoint.Scalar))
}

// amountMultiplier returns the scaled amount multiplier for a vault
// balance: 1.0 + maxAmountBonus * balance / (balance + pivot).
// Non-positive balances get the neutral multiplier.
func amountMultiplier(balance *big.Int) *big.Int {
	if balance == nil || balance.Sign() <= 0 {
		return big.NewInt(fixedpoint.Scalar)
	}
	num := new(big.Int).Mul(big.NewInt(maxAmountBonus), balance)
	den := new(big.Int).Add(balance, amountPivot)
	bonus := num.Quo(num, den)
	return bonus.Add(bonus, big.NewInt(fixedpoint.Scalar))
}

// factionPoints computes balance * timeMul * amountMul with floor
// rounding at each step. A zero or negative balance earns nothing.
func factionPoints(balance *big.Int, ageSecs int64) (*big.Int, error) {
	if balance == nil || balance.Sign() <= 0 {
		return big.NewInt(0), nil
	}
	withAmount, err := fixedpoint.MulFloor(balance, amountMultiplier(balance), big.NewInt(fixedpoint.Scalar))
	if err != nil {
		return nil, err
	}
	return fixedpoint.MulFloor(withAmount, timeMultiplier(ageSecs), big.NewInt(fixedpoint.Scalar))
}

// shouldResetAnchor reports whether the current balance dropped to or
// below half of the last recorded epoch balance, which forfeits the
// accrued time bonus.
func shouldResetAnchor(current, lastRecorded *big.Int) (bool, error) {
	if lastRecorded == nil || lastRecorded.Sign() <= 0 {
		return false, nil
	}
	half, err := fixedpoint.MulFloor(lastRecorded, big.NewInt(withdrawalResetThreshold), big.NewInt(fixedpoint.Scalar))
	if err != nil {
		return false, err
	}
	return current.Cmp(half) <= 0, nil
}
