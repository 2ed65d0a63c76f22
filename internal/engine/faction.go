package engine

import (
	"context"
	"errors"
	"math/big"

	"github.com/rs/zerolog/log"

	"faction-arena/internal/store"
)

// NumFactions is the size of the faction roster. Faction ids are
// dense, starting at zero.
const NumFactions int32 = 3

func ValidFaction(f int32) bool {
	return f >= 0 && f < NumFactions
}

// SelectFaction records a player's faction choice. First selection
// creates the player and starts the time multiplier clock; switching
// later only takes effect for epochs the player has not entered yet.
func (e *Engine) SelectFaction(ctx context.Context, address string, faction int32) error {
	if !ValidFaction(faction) {
		return ErrInvalidFaction
	}
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		p, err := q.GetPlayer(ctx, address)
		switch {
		case errors.Is(err, store.ErrNotFound):
			p = &store.Player{
				Address:              address,
				SelectedFaction:      faction,
				TimeMultiplierAnchor: e.now().Unix(),
				LastEpochBalance:     big.NewInt(0),
			}
		case err != nil:
			return err
		default:
			p.SelectedFaction = faction
		}
		return q.UpsertPlayer(ctx, p)
	})
	if err != nil {
		return err
	}
	log.Info().Str("player", address).Int32("faction", faction).Msg("faction_selected")
	return nil
}

// GetPlayer returns the durable player record.
func (e *Engine) GetPlayer(ctx context.Context, address string) (*store.Player, error) {
	p, err := e.store.Q().GetPlayer(ctx, address)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPlayerNotFound
	}
	return p, err
}

// GetEpochPlayer returns the player's state for the current epoch. If
// the player has not entered the epoch yet the view is computed on
// the fly from the live vault balance and nothing is persisted.
func (e *Engine) GetEpochPlayer(ctx context.Context, address string) (*store.EpochPlayer, error) {
	q := e.store.Q()
	epoch, err := q.CurrentEpochNumber(ctx)
	if err != nil {
		return nil, err
	}
	ep, err := q.GetEpochPlayer(ctx, epoch, address)
	if err == nil {
		return ep, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	p, err := q.GetPlayer(ctx, address)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFactionNotSelected
	}
	if err != nil {
		return nil, err
	}
	balance, err := e.vault.Balance(ctx, address)
	if err != nil {
		return nil, err
	}
	fp, err := factionPoints(balance, e.now().Unix()-p.TimeMultiplierAnchor)
	if err != nil {
		return nil, err
	}
	return &store.EpochPlayer{
		EpochNumber:          epoch,
		Address:              address,
		EpochBalanceSnapshot: balance,
		AvailableFP:          fp,
		TotalFPContributed:   big.NewInt(0),
	}, nil
}

// touchEpochPlayer returns the player's materialized state for the
// epoch, creating it on first contact. Creation locks the player's
// currently selected faction for the whole epoch, applies the
// withdrawal reset check against the vault balance and snapshots the
// earned faction points. Runs inside the caller's transaction.
func (e *Engine) touchEpochPlayer(ctx context.Context, q *store.Queries, epoch int64, address string, balance *big.Int) (*store.EpochPlayer, error) {
	ep, err := q.GetEpochPlayer(ctx, epoch, address)
	if err == nil {
		return ep, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	p, err := q.GetPlayer(ctx, address)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFactionNotSelected
	}
	if err != nil {
		return nil, err
	}

	now := e.now().Unix()
	reset, err := shouldResetAnchor(balance, p.LastEpochBalance)
	if err != nil {
		return nil, err
	}
	if reset {
		p.TimeMultiplierAnchor = now
		log.Info().Str("player", address).Msg("time_multiplier_reset")
	}
	p.LastEpochBalance = new(big.Int).Set(balance)
	if err := q.UpsertPlayer(ctx, p); err != nil {
		return nil, err
	}

	fp, err := factionPoints(balance, now-p.TimeMultiplierAnchor)
	if err != nil {
		return nil, err
	}
	faction := p.SelectedFaction
	ep = &store.EpochPlayer{
		EpochNumber:          epoch,
		Address:              address,
		EpochFaction:         &faction,
		EpochBalanceSnapshot: balance,
		AvailableFP:          fp,
		TotalFPContributed:   big.NewInt(0),
	}
	if err := q.InsertEpochPlayer(ctx, ep); err != nil {
		return nil, err
	}
	log.Info().
		Str("player", address).
		Int64("epoch", epoch).
		Int32("faction", faction).
		Str("available_fp", fp.String()).
		Msg("epoch_faction_locked")
	return ep, nil
}
