package engine

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"

	"faction-arena/internal/fixedpoint"
	"faction-arena/internal/store"
)

const swapDeadlineSlack = 5 * time.Minute

// EpochView is an epoch together with its faction standings.
type EpochView struct {
	store.EpochInfo
	Standings []store.FactionStanding
}

// CurrentEpochNumber returns the number of the active epoch.
func (e *Engine) CurrentEpochNumber(ctx context.Context) (int64, error) {
	return e.store.Q().CurrentEpochNumber(ctx)
}

// GetEpoch returns an epoch and its standings. A nil number resolves
// to the current epoch.
func (e *Engine) GetEpoch(ctx context.Context, number *int64) (*EpochView, error) {
	q := e.store.Q()
	var n int64
	if number != nil {
		n = *number
	} else {
		cur, err := q.CurrentEpochNumber(ctx)
		if err != nil {
			return nil, err
		}
		n = cur
	}
	info, err := q.GetEpoch(ctx, n)
	if err != nil {
		return nil, err
	}
	standings, err := q.GetStandings(ctx, n)
	if err != nil {
		return nil, err
	}
	return &EpochView{EpochInfo: *info, Standings: standings}, nil
}

// winningFaction picks the faction with the highest contributed
// total. Standings arrive ordered by faction id, so a strict
// comparison breaks ties toward the lowest id. An epoch with no
// standings defaults to faction 0.
func winningFaction(standings []store.FactionStanding) int32 {
	var winner int32
	best := big.NewInt(0)
	for _, s := range standings {
		if s.Contributed.Cmp(best) > 0 {
			winner = s.FactionID
			best = s.Contributed
		}
	}
	return winner
}

// CycleEpoch finalizes the current epoch once its end time has
// passed: harvests vault emissions, swaps them into the payout token,
// records the resulting pool alongside the winning faction, and opens
// the next epoch. Anyone may call it; the first caller past the end
// time wins and later callers see epoch_not_ready for the new epoch.
func (e *Engine) CycleEpoch(ctx context.Context) (int64, error) {
	q := e.store.Q()
	epoch, err := q.CurrentEpochNumber(ctx)
	if err != nil {
		return 0, err
	}
	info, err := q.GetEpoch(ctx, epoch)
	if err != nil {
		return 0, err
	}
	now := e.now()
	if now.Before(info.EndTime) {
		return 0, ErrEpochNotReady
	}
	if info.IsFinalized {
		return 0, ErrEpochAlreadyFinalized
	}
	standings, err := q.GetStandings(ctx, epoch)
	if err != nil {
		return 0, err
	}
	winner := winningFaction(standings)
	cfg, err := q.GetGlobalConfig(ctx)
	if err != nil {
		return 0, err
	}

	pool, err := e.harvestRewards(ctx, cfg, now)
	if err != nil {
		return 0, err
	}

	next := epoch + 1
	err = e.store.InTx(ctx, func(q *store.Queries) error {
		locked, err := q.GetEpochForUpdate(ctx, epoch)
		if err != nil {
			return err
		}
		if locked.IsFinalized {
			return ErrEpochAlreadyFinalized
		}
		if err := q.FinalizeEpoch(ctx, epoch, winner, pool); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrEpochAlreadyFinalized
			}
			return err
		}
		return q.InsertEpoch(ctx, &store.EpochInfo{
			EpochNumber: next,
			StartTime:   now,
			EndTime:     now.Add(time.Duration(cfg.EpochDurationSecs) * time.Second),
			RewardPool:  big.NewInt(0),
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info().
		Int64("epoch", epoch).
		Int32("winning_faction", winner).
		Str("reward_pool", pool.String()).
		Int64("next_epoch", next).
		Msg("epoch_finalized")
	return next, nil
}

// harvestRewards claims accrued emissions from the vault, pulls them
// to the engine account and swaps them for the payout token. The pool
// is the payout-token balance delta across the swap, so tokens that
// were already sitting in the account are not counted.
func (e *Engine) harvestRewards(ctx context.Context, cfg *store.GlobalConfig, now time.Time) (*big.Int, error) {
	claimed, err := e.vault.ClaimEmissions(ctx, cfg.ReserveTokenIDs, e.account)
	if err != nil {
		return nil, err
	}
	if claimed.Sign() <= 0 {
		return big.NewInt(0), nil
	}
	if _, err := e.vault.AdminWithdraw(ctx, claimed, e.account); err != nil {
		return nil, err
	}
	pre, err := e.token.BalanceOf(ctx, cfg.RewardPayoutToken, e.account)
	if err != nil {
		return nil, err
	}
	path := []string{cfg.RewardSourceToken, cfg.RewardPayoutToken}
	if err := e.swap.SwapExactIn(ctx, path, claimed, big.NewInt(0), e.account, now.Add(swapDeadlineSlack)); err != nil {
		return nil, err
	}
	post, err := e.token.BalanceOf(ctx, cfg.RewardPayoutToken, e.account)
	if err != nil {
		return nil, err
	}
	pool, err := fixedpoint.Sub(post, pre)
	if err != nil {
		return nil, err
	}
	if pool.Sign() < 0 {
		log.Warn().
			Str("pre", pre.String()).
			Str("post", post.String()).
			Msg("payout_balance_decreased_during_swap")
		pool = big.NewInt(0)
	}
	return pool, nil
}
