package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartJanitor sweeps expired records on an interval. Reads already
// treat expired rows as absent; the sweep just reclaims the space.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.sweepExpired(ctx); err != nil && ctx.Err() == nil {
					log.Warn().Err(err).Msg("janitor sweep failed")
				}
			}
		}
	}()
}

func (s *Store) sweepExpired(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, `DELETE FROM game_sessions WHERE expires_at <= now()`); err != nil {
		return err
	}
	if _, err := s.Pool.Exec(ctx, `DELETE FROM epoch_players WHERE expires_at <= now()`); err != nil {
		return err
	}
	_, err := s.Pool.Exec(ctx, `DELETE FROM epochs WHERE expires_at <= now()`)
	return err
}
