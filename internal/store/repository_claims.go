package store

import (
	"context"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// CreateClaim is insert-once: a second claim for the same
// (address, epoch) fails with ErrConflict.
func (q *Queries) CreateClaim(ctx context.Context, address string, epoch int64, amount *big.Int) error {
	_, err := q.db.Exec(ctx, `INSERT INTO reward_claims (address, epoch_number, amount) VALUES ($1,$2,$3)`,
		address, epoch, numericParam(amount))
	return mapConflict(err)
}

func (q *Queries) HasClaimed(ctx context.Context, address string, epoch int64) (bool, error) {
	row := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reward_claims WHERE address = $1 AND epoch_number = $2)`, address, epoch)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (q *Queries) GetClaim(ctx context.Context, address string, epoch int64) (*RewardClaim, error) {
	row := q.db.QueryRow(ctx, `SELECT address, epoch_number, amount, claimed_at FROM reward_claims WHERE address = $1 AND epoch_number = $2`, address, epoch)
	var c RewardClaim
	var amount pgtype.Numeric
	if err := row.Scan(&c.Address, &c.EpochNumber, &amount, &c.ClaimedAt); err != nil {
		return nil, mapNotFound(err)
	}
	c.Amount = numericVal(amount)
	return &c, nil
}
