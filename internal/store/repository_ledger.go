package store

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func (q *Queries) InsertLedgerEntry(ctx context.Context, address string, epoch int64, entryType string, amount *big.Int, refType, refID string) error {
	_, err := q.db.Exec(ctx, `INSERT INTO fp_ledger (id, address, epoch_number, entry_type, amount, ref_type, ref_id) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		NewID(), address, epoch, entryType, numericParam(amount), refType, refID)
	return err
}

type LedgerFilter struct {
	Address string
	Epoch   *int64
	From    *time.Time
	To      *time.Time
}

func (q *Queries) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	sql := `SELECT id, address, epoch_number, entry_type, amount, ref_type, ref_id, created_at FROM fp_ledger WHERE 1=1`
	args := []any{}
	add := func(clause string, v any) {
		args = append(args, v)
		sql += clause + strconv.Itoa(len(args))
	}
	if f.Address != "" {
		add(` AND address = $`, f.Address)
	}
	if f.Epoch != nil {
		add(` AND epoch_number = $`, *f.Epoch)
	}
	if f.From != nil {
		add(` AND created_at >= $`, *f.From)
	}
	if f.To != nil {
		add(` AND created_at <= $`, *f.To)
	}
	args = append(args, limit)
	sql += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	sql += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		var amount pgtype.Numeric
		if err := rows.Scan(&e.ID, &e.Address, &e.EpochNumber, &e.EntryType, &amount, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Amount = numericVal(amount)
		out = append(out, e)
	}
	return out, rows.Err()
}
