package store

import (
	"context"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// GetEpochPlayer returns the live epoch record or ErrNotFound; an
// expired row reads the same as a never-created one.
func (q *Queries) GetEpochPlayer(ctx context.Context, epoch int64, address string) (*EpochPlayer, error) {
	row := q.db.QueryRow(ctx, `SELECT epoch_number, address, epoch_faction, epoch_balance_snapshot, available_fp, total_fp_contributed, expires_at
		FROM epoch_players WHERE epoch_number = $1 AND address = $2 AND expires_at > now()`, epoch, address)
	ep, err := scanEpochPlayer(row)
	if err != nil {
		return nil, err
	}
	q.extendEpochPlayerTTL(ctx, epoch, address)
	return ep, nil
}

func scanEpochPlayer(row interface{ Scan(...any) error }) (*EpochPlayer, error) {
	var ep EpochPlayer
	var faction pgtype.Int4
	var snapshot, available, contributed pgtype.Numeric
	if err := row.Scan(&ep.EpochNumber, &ep.Address, &faction, &snapshot, &available, &contributed, &ep.ExpiresAt); err != nil {
		return nil, mapNotFound(err)
	}
	ep.EpochFaction = int32PtrVal(faction)
	ep.EpochBalanceSnapshot = numericVal(snapshot)
	ep.AvailableFP = numericVal(available)
	ep.TotalFPContributed = numericVal(contributed)
	return &ep, nil
}

func (q *Queries) InsertEpochPlayer(ctx context.Context, ep *EpochPlayer) error {
	// An expired-but-unswept row must not block re-materialization.
	_, err := q.db.Exec(ctx, `DELETE FROM epoch_players WHERE epoch_number = $1 AND address = $2 AND expires_at <= now()`, ep.EpochNumber, ep.Address)
	if err != nil {
		return err
	}
	_, err = q.db.Exec(ctx, `INSERT INTO epoch_players (epoch_number, address, epoch_faction, epoch_balance_snapshot, available_fp, total_fp_contributed, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		ep.EpochNumber, ep.Address, int4PtrParam(ep.EpochFaction), numericParam(ep.EpochBalanceSnapshot),
		numericParam(ep.AvailableFP), numericParam(ep.TotalFPContributed), time.Now().Add(RecordRetention))
	return mapConflict(err)
}

func (q *Queries) SetAvailableFP(ctx context.Context, epoch int64, address string, available *big.Int) error {
	tag, err := q.db.Exec(ctx, `UPDATE epoch_players SET available_fp = $3 WHERE epoch_number = $1 AND address = $2 AND expires_at > now()`,
		epoch, address, numericParam(available))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) AddContributedFP(ctx context.Context, epoch int64, address string, delta *big.Int) error {
	tag, err := q.db.Exec(ctx, `UPDATE epoch_players SET total_fp_contributed = total_fp_contributed + $3 WHERE epoch_number = $1 AND address = $2 AND expires_at > now()`,
		epoch, address, numericParam(delta))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) extendEpochPlayerTTL(ctx context.Context, epoch int64, address string) {
	_, _ = q.db.Exec(ctx, `UPDATE epoch_players SET expires_at = now() + $3 WHERE epoch_number = $1 AND address = $2 AND expires_at < now() + $4`,
		epoch, address, RecordRetention, extendThreshold)
}
