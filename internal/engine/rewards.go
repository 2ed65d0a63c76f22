package engine

import (
	"context"
	"errors"
	"math/big"

	"github.com/rs/zerolog/log"

	"faction-arena/internal/fixedpoint"
	"faction-arena/internal/store"
)

// ClaimEpochReward pays out a player's share of a finalized epoch's
// reward pool. The share is the pool scaled by the player's
// contribution over the winning faction's total, floored. Each player
// claims an epoch at most once; the token transfer and the claim
// record commit together.
func (e *Engine) ClaimEpochReward(ctx context.Context, address string, epoch int64) (*big.Int, error) {
	if err := e.requireNotPaused(ctx); err != nil {
		return nil, err
	}
	var amount *big.Int
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		info, err := q.GetEpoch(ctx, epoch)
		if errors.Is(err, store.ErrNotFound) {
			return ErrEpochNotFinalized
		}
		if err != nil {
			return err
		}
		if !info.IsFinalized || info.WinningFaction == nil {
			return ErrEpochNotFinalized
		}
		claimed, err := q.HasClaimed(ctx, address, epoch)
		if err != nil {
			return err
		}
		if claimed {
			return ErrRewardAlreadyClaimed
		}
		ep, err := q.GetEpochPlayer(ctx, epoch, address)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotWinningFaction
		}
		if err != nil {
			return err
		}
		if ep.EpochFaction == nil || *ep.EpochFaction != *info.WinningFaction {
			return ErrNotWinningFaction
		}
		if ep.TotalFPContributed.Sign() == 0 || info.RewardPool.Sign() == 0 {
			return ErrNoRewardsAvailable
		}
		total, err := q.GetStanding(ctx, epoch, *info.WinningFaction)
		if err != nil {
			return err
		}
		if total.Sign() == 0 {
			return ErrNoRewardsAvailable
		}
		share, err := fixedpoint.DivFloor(info.RewardPool, ep.TotalFPContributed, total)
		if err != nil {
			return err
		}
		if err := q.CreateClaim(ctx, address, epoch, share); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrRewardAlreadyClaimed
			}
			return err
		}
		if err := e.ledger.CreditReward(ctx, q, address, epoch, share); err != nil {
			return err
		}
		if share.Sign() > 0 {
			cfg, err := q.GetGlobalConfig(ctx)
			if err != nil {
				return err
			}
			// A failed transfer rolls the claim back so the player can
			// retry.
			if err := e.token.Transfer(ctx, cfg.RewardPayoutToken, address, share); err != nil {
				return err
			}
		}
		amount = share
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("player", address).
		Int64("epoch", epoch).
		Str("amount", amount.String()).
		Msg("reward_claimed")
	return amount, nil
}
