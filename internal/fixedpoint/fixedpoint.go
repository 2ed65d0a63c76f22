// Package fixedpoint provides overflow-checked arithmetic on signed
// 128-bit fixed-point amounts. Values are *big.Int constrained to the
// i128 range; every operation that could leave the range fails closed.
package fixedpoint

import (
	"errors"
	"math/big"
)

var ErrOverflow = errors.New("overflow_error")

// Scalar is the fixed-point scale factor: 10^ScalarDecimals, matching
// the payout token's precision.
const (
	ScalarDecimals       = 7
	Scalar         int64 = 10_000_000
)

var (
	i128Max = func() *big.Int {
		v := new(big.Int).Lsh(big.NewInt(1), 127)
		return v.Sub(v, big.NewInt(1))
	}()
	i128Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// InRange reports whether v fits in a signed 128-bit integer.
func InRange(v *big.Int) bool {
	return v.Cmp(i128Min) >= 0 && v.Cmp(i128Max) <= 0
}

func checked(v *big.Int) (*big.Int, error) {
	if !InRange(v) {
		return nil, ErrOverflow
	}
	return v, nil
}

// Add returns x + y, failing on i128 overflow.
func Add(x, y *big.Int) (*big.Int, error) {
	return checked(new(big.Int).Add(x, y))
}

// Sub returns x - y, failing on i128 overflow.
func Sub(x, y *big.Int) (*big.Int, error) {
	return checked(new(big.Int).Sub(x, y))
}

// MulFloor returns floor(x * y / denom), failing on i128 overflow or a
// non-positive denominator.
func MulFloor(x, y, denom *big.Int) (*big.Int, error) {
	if denom.Sign() <= 0 {
		return nil, ErrOverflow
	}
	prod := new(big.Int).Mul(x, y)
	out := floorDiv(prod, denom)
	return checked(out)
}

// DivFloor returns floor(x * scale / y), failing on i128 overflow or a
// zero divisor. Used for proportional shares: share = pool * num / den.
func DivFloor(x, scale, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrOverflow
	}
	prod := new(big.Int).Mul(x, scale)
	out := floorDiv(prod, y)
	return checked(out)
}

// floorDiv divides toward negative infinity, matching fixed_mul_floor
// semantics for negative intermediates.
func floorDiv(num, denom *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, denom, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (denom.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}
