package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Pending sessions live long enough to straddle an epoch boundary;
// settled ones expire quickly so their ids free up for reuse.
const (
	pendingSessionTTL = 7 * 24 * time.Hour
	settledSessionTTL = time.Hour
)

// SessionExists reports whether a live row (pending or recently
// settled) occupies the id.
func (q *Queries) SessionExists(ctx context.Context, sessionID uint64) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM game_sessions WHERE session_id = $1 AND expires_at > now())`, int64(sessionID)).Scan(&exists)
	return exists, err
}

// CreateSession inserts a Pending session. A live row with the same id
// (pending or recently settled) makes this fail with ErrConflict; a
// stale expired row does not block reuse.
func (q *Queries) CreateSession(ctx context.Context, s *GameSession) error {
	_, err := q.db.Exec(ctx, `DELETE FROM game_sessions WHERE session_id = $1 AND expires_at <= now()`, int64(s.SessionID))
	if err != nil {
		return err
	}
	_, err = q.db.Exec(ctx, `INSERT INTO game_sessions (session_id, game_addr, player1, player2, wager1, wager2, status, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		int64(s.SessionID), s.GameAddr, s.Player1, s.Player2, numericParam(s.Wager1), numericParam(s.Wager2),
		SessionPending, time.Now().Add(pendingSessionTTL))
	return mapConflict(err)
}

// GetPendingSession row-locks the session so two settlement attempts
// for the same id serialize.
func (q *Queries) GetPendingSession(ctx context.Context, sessionID uint64) (*GameSession, error) {
	row := q.db.QueryRow(ctx, `SELECT session_id, game_addr, player1, player2, wager1, wager2, status, created_at, expires_at
		FROM game_sessions WHERE session_id = $1 AND status = $2 AND expires_at > now() FOR UPDATE`, int64(sessionID), SessionPending)
	var s GameSession
	var id int64
	var w1, w2 pgtype.Numeric
	if err := row.Scan(&id, &s.GameAddr, &s.Player1, &s.Player2, &w1, &w2, &s.Status, &s.CreatedAt, &s.ExpiresAt); err != nil {
		return nil, mapNotFound(err)
	}
	s.SessionID = uint64(id)
	s.Wager1 = numericVal(w1)
	s.Wager2 = numericVal(w2)
	return &s, nil
}

func (q *Queries) SettleSession(ctx context.Context, sessionID uint64) error {
	tag, err := q.db.Exec(ctx, `UPDATE game_sessions SET status = $2, expires_at = now() + $3 WHERE session_id = $1 AND status = $4`,
		int64(sessionID), SessionSettled, settledSessionTTL, SessionPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
