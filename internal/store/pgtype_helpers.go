package store

import (
	"errors"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

func numericParam(v *big.Int) pgtype.Numeric {
	if v == nil {
		return pgtype.Numeric{Int: big.NewInt(0), Valid: true}
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

// numericVal converts a NUMERIC(39,0) column back to a big integer.
func numericVal(v pgtype.Numeric) *big.Int {
	if !v.Valid || v.Int == nil {
		return big.NewInt(0)
	}
	out := new(big.Int).Set(v.Int)
	if v.Exp > 0 {
		out.Mul(out, pow10(v.Exp))
	} else if v.Exp < 0 {
		out.Quo(out, pow10(-v.Exp))
	}
	return out
}

func pow10(exp int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}

func int4PtrParam(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func int32PtrVal(v pgtype.Int4) *int32 {
	if !v.Valid {
		return nil
	}
	out := v.Int32
	return &out
}
