package store

import (
	"context"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Record retention mirrors the source chain's storage rent: records
// carry an expiration and every access that finds them close to expiry
// pushes it out again. A read never returns an expired record.
const (
	RecordRetention = 30 * 24 * time.Hour
	extendThreshold = 7 * 24 * time.Hour
)

func (q *Queries) InsertEpoch(ctx context.Context, e *EpochInfo) error {
	_, err := q.db.Exec(ctx, `INSERT INTO epochs (epoch_number, start_time, end_time, expires_at) VALUES ($1,$2,$3,$4)`,
		e.EpochNumber, e.StartTime, e.EndTime, time.Now().Add(RecordRetention))
	return mapConflict(err)
}

func (q *Queries) GetEpoch(ctx context.Context, number int64) (*EpochInfo, error) {
	return q.getEpoch(ctx, number, false)
}

// GetEpochForUpdate row-locks the epoch so concurrent finalization
// attempts serialize; the loser sees is_finalized and fails closed.
func (q *Queries) GetEpochForUpdate(ctx context.Context, number int64) (*EpochInfo, error) {
	return q.getEpoch(ctx, number, true)
}

func (q *Queries) getEpoch(ctx context.Context, number int64, forUpdate bool) (*EpochInfo, error) {
	sql := `SELECT epoch_number, start_time, end_time, is_finalized, winning_faction, reward_pool FROM epochs WHERE epoch_number = $1 AND expires_at > now()`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	row := q.db.QueryRow(ctx, sql, number)
	var e EpochInfo
	var winning pgtype.Int4
	var pool pgtype.Numeric
	if err := row.Scan(&e.EpochNumber, &e.StartTime, &e.EndTime, &e.IsFinalized, &winning, &pool); err != nil {
		return nil, mapNotFound(err)
	}
	e.WinningFaction = int32PtrVal(winning)
	e.RewardPool = numericVal(pool)
	q.extendEpochTTL(ctx, number)
	return &e, nil
}

func (q *Queries) extendEpochTTL(ctx context.Context, number int64) {
	_, _ = q.db.Exec(ctx, `UPDATE epochs SET expires_at = now() + $2 WHERE epoch_number = $1 AND expires_at < now() + $3`,
		number, RecordRetention, extendThreshold)
}

// CurrentEpochNumber returns the highest live epoch. Epoch N+1 is
// created in the same transaction that finalizes N, so the maximum is
// always the open epoch.
func (q *Queries) CurrentEpochNumber(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, `SELECT COALESCE(MAX(epoch_number), -1) FROM epochs WHERE expires_at > now()`)
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

func (q *Queries) FinalizeEpoch(ctx context.Context, number int64, winningFaction int32, rewardPool *big.Int) error {
	tag, err := q.db.Exec(ctx, `UPDATE epochs SET is_finalized = TRUE, winning_faction = $2, reward_pool = $3 WHERE epoch_number = $1 AND NOT is_finalized`,
		number, winningFaction, numericParam(rewardPool))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (q *Queries) GetStandings(ctx context.Context, epoch int64) ([]FactionStanding, error) {
	rows, err := q.db.Query(ctx, `SELECT faction_id, contributed FROM faction_standings WHERE epoch_number = $1 ORDER BY faction_id`, epoch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FactionStanding
	for rows.Next() {
		var s FactionStanding
		var contributed pgtype.Numeric
		if err := rows.Scan(&s.FactionID, &contributed); err != nil {
			return nil, err
		}
		s.Contributed = numericVal(contributed)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (q *Queries) GetStanding(ctx context.Context, epoch int64, faction int32) (*big.Int, error) {
	row := q.db.QueryRow(ctx, `SELECT contributed FROM faction_standings WHERE epoch_number = $1 AND faction_id = $2`, epoch, faction)
	var contributed pgtype.Numeric
	if err := row.Scan(&contributed); err != nil {
		if mapNotFound(err) == ErrNotFound {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	return numericVal(contributed), nil
}

func (q *Queries) AddStanding(ctx context.Context, epoch int64, faction int32, delta *big.Int) error {
	_, err := q.db.Exec(ctx, `INSERT INTO faction_standings (epoch_number, faction_id, contributed) VALUES ($1,$2,$3)
		ON CONFLICT (epoch_number, faction_id) DO UPDATE SET contributed = faction_standings.contributed + EXCLUDED.contributed`,
		epoch, faction, numericParam(delta))
	return err
}
