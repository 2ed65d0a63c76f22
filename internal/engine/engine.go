package engine

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"

	"faction-arena/internal/ledger"
	"faction-arena/internal/store"
)

// VaultClient is the slice of the fee vault the engine touches.
type VaultClient interface {
	Balance(ctx context.Context, address string) (*big.Int, error)
	AdminWithdraw(ctx context.Context, amount *big.Int, to string) (*big.Int, error)
	ClaimEmissions(ctx context.Context, reserveTokenIDs []int32, to string) (*big.Int, error)
}

// SwapClient swaps harvested yield into the payout token.
type SwapClient interface {
	SwapExactIn(ctx context.Context, path []string, amountIn, minAmountOut *big.Int, to string, deadline time.Time) error
}

// TokenClient moves and inspects token balances on behalf of the
// engine account.
type TokenClient interface {
	BalanceOf(ctx context.Context, tokenID string, account string) (*big.Int, error)
	Transfer(ctx context.Context, tokenID string, to string, amount *big.Int) error
}

// Engine owns the faction economy: point accrual, wager escrow,
// epoch lifecycle and reward distribution. Every public operation is
// atomic; state changes happen inside a single database transaction
// and either all land or none do.
type Engine struct {
	store    *store.Store
	ledger   *ledger.Ledger
	vault    VaultClient
	swap     SwapClient
	token    TokenClient
	verifier Verifier
	account  string

	now func() time.Time
}

func New(st *store.Store, v VaultClient, sw SwapClient, tk TokenClient, account string) *Engine {
	return &Engine{
		store:    st,
		ledger:   ledger.New(),
		vault:    v,
		swap:     sw,
		token:    tk,
		verifier: NonEmptyProofVerifier{},
		account:  account,
		now:      time.Now,
	}
}

// SetVerifier swaps the outcome proof verifier. Call before serving.
func (e *Engine) SetVerifier(v Verifier) {
	e.verifier = v
}

// Bootstrap seeds the global configuration and opens epoch 0 when the
// database is empty. Safe to call on every startup.
func (e *Engine) Bootstrap(ctx context.Context, seed *store.GlobalConfig) error {
	return e.store.InTx(ctx, func(q *store.Queries) error {
		if err := q.SeedGlobalConfig(ctx, seed); err != nil {
			return err
		}
		_, err := q.CurrentEpochNumber(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		cfg, err := q.GetGlobalConfig(ctx)
		if err != nil {
			return err
		}
		start := e.now()
		ep := &store.EpochInfo{
			EpochNumber: 0,
			StartTime:   start,
			EndTime:     start.Add(time.Duration(cfg.EpochDurationSecs) * time.Second),
			RewardPool:  big.NewInt(0),
		}
		if err := q.InsertEpoch(ctx, ep); err != nil {
			return err
		}
		log.Info().Int64("epoch", 0).Time("end_time", ep.EndTime).Msg("epoch_opened")
		return nil
	})
}

// requireNotPaused gates player-facing entry points. Admin and
// lifecycle operations stay available while paused.
func (e *Engine) requireNotPaused(ctx context.Context) error {
	cfg, err := e.store.Q().GetGlobalConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return ErrEnginePaused
	}
	return nil
}
