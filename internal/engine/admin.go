package engine

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"faction-arena/internal/store"
)

// RegisterAccount creates a player API credential. The key itself is
// never stored, only its hash.
func (e *Engine) RegisterAccount(ctx context.Context, address, apiKeyHash string) error {
	return e.store.InTx(ctx, func(q *store.Queries) error {
		return q.CreateAccount(ctx, address, apiKeyHash)
	})
}

// AddGame whitelists a game and rotates its API credential.
func (e *Engine) AddGame(ctx context.Context, gameAddr, apiKeyHash string) error {
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		return q.AddGame(ctx, gameAddr, apiKeyHash)
	})
	if err != nil {
		return err
	}
	log.Info().Str("game", gameAddr).Msg("game_whitelisted")
	return nil
}

// RemoveGame drops a game from the whitelist. Pending sessions it
// opened remain settleable only by re-whitelisting.
func (e *Engine) RemoveGame(ctx context.Context, gameAddr string) error {
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		return q.RemoveGame(ctx, gameAddr)
	})
	if err != nil {
		return err
	}
	log.Info().Str("game", gameAddr).Msg("game_removed")
	return nil
}

func (e *Engine) IsGameWhitelisted(ctx context.Context, gameAddr string) (bool, error) {
	return e.store.Q().IsGameWhitelisted(ctx, gameAddr)
}

func (e *Engine) ListGames(ctx context.Context) ([]store.Game, error) {
	return e.store.Q().ListGames(ctx)
}

func (e *Engine) GetConfig(ctx context.Context) (*store.GlobalConfig, error) {
	return e.store.Q().GetGlobalConfig(ctx)
}

// ConfigUpdate carries partial configuration changes; nil fields are
// left untouched.
type ConfigUpdate struct {
	VaultAddr         *string
	SwapRouterAddr    *string
	RewardSourceToken *string
	RewardPayoutToken *string
	EpochDurationSecs *int64
	ReserveTokenIDs   []int32
}

// UpdateConfig applies a partial configuration update atomically.
// Changes take effect from the next operation that reads them; the
// running epoch keeps its original end time.
func (e *Engine) UpdateConfig(ctx context.Context, u ConfigUpdate) (*store.GlobalConfig, error) {
	var out *store.GlobalConfig
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		cfg, err := q.GetGlobalConfig(ctx)
		if err != nil {
			return err
		}
		if u.VaultAddr != nil {
			cfg.VaultAddr = *u.VaultAddr
		}
		if u.SwapRouterAddr != nil {
			cfg.SwapRouterAddr = *u.SwapRouterAddr
		}
		if u.RewardSourceToken != nil {
			cfg.RewardSourceToken = *u.RewardSourceToken
		}
		if u.RewardPayoutToken != nil {
			cfg.RewardPayoutToken = *u.RewardPayoutToken
		}
		if u.EpochDurationSecs != nil {
			if *u.EpochDurationSecs <= 0 {
				return ErrInvalidAmount
			}
			cfg.EpochDurationSecs = *u.EpochDurationSecs
		}
		if u.ReserveTokenIDs != nil {
			cfg.ReserveTokenIDs = u.ReserveTokenIDs
		}
		if err := q.UpdateGlobalConfig(ctx, cfg); err != nil {
			return err
		}
		out = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Msg("config_updated")
	return out, nil
}

// SetPaused toggles the pause switch. Pausing blocks game starts and
// reward claims; settlement of in-flight sessions and epoch cycling
// stay live so the system can drain.
func (e *Engine) SetPaused(ctx context.Context, paused bool) error {
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		return q.SetPaused(ctx, paused)
	})
	if err != nil {
		return err
	}
	log.Info().Bool("paused", paused).Msg("pause_toggled")
	return nil
}

// MigratePlayer upgrades a player record persisted under an older
// data layout. Returns false when the record was already current.
func (e *Engine) MigratePlayer(ctx context.Context, address string) (bool, error) {
	var migrated bool
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		m, err := q.MigratePlayer(ctx, address)
		if errors.Is(err, store.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}
		migrated = m
		return nil
	})
	if err != nil {
		return false, err
	}
	if migrated {
		log.Info().Str("player", address).Msg("player_migrated")
	}
	return migrated, nil
}

// LedgerEntries lists faction-point ledger rows matching the filter.
func (e *Engine) LedgerEntries(ctx context.Context, f store.LedgerFilter, limit, offset int) ([]store.LedgerEntry, error) {
	return e.store.Q().ListLedgerEntries(ctx, f, limit, offset)
}

// AccountByAPIKey resolves a player credential. ErrPlayerNotFound
// when no account matches.
func (e *Engine) AccountByAPIKey(ctx context.Context, apiKey string) (*store.Account, error) {
	a, err := e.store.Q().GetAccountByAPIKey(ctx, apiKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPlayerNotFound
	}
	return a, err
}

// GameByAPIKey resolves a game credential. ErrGameNotWhitelisted when
// no whitelisted game matches.
func (e *Engine) GameByAPIKey(ctx context.Context, apiKey string) (*store.Game, error) {
	g, err := e.store.Q().GetGameByAPIKey(ctx, apiKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotWhitelisted
	}
	return g, err
}

// ClaimFor reports a player's recorded claim for an epoch.
func (e *Engine) ClaimFor(ctx context.Context, address string, epoch int64) (*store.RewardClaim, error) {
	return e.store.Q().GetClaim(ctx, address, epoch)
}
