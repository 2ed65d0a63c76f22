// Package ledger records every FP movement next to the state change
// that caused it, in the same transaction.
package ledger

import (
	"context"
	"math/big"
	"strconv"

	"faction-arena/internal/store"
)

const (
	EntryWagerEscrow = "wager_escrow"
	EntryWagerBurn   = "wager_burn"
	EntryPotCredit   = "pot_credit"
	EntryRewardClaim = "reward_claim"
)

type Ledger struct{}

func New() *Ledger {
	return &Ledger{}
}

func (l *Ledger) EscrowWager(ctx context.Context, q *store.Queries, address string, epoch int64, sessionID uint64, amount *big.Int) error {
	return q.InsertLedgerEntry(ctx, address, epoch, EntryWagerEscrow, new(big.Int).Neg(amount), "session", formatSessionID(sessionID))
}

func (l *Ledger) BurnWager(ctx context.Context, q *store.Queries, address string, epoch int64, sessionID uint64, amount *big.Int) error {
	return q.InsertLedgerEntry(ctx, address, epoch, EntryWagerBurn, new(big.Int).Neg(amount), "session", formatSessionID(sessionID))
}

func (l *Ledger) CreditPot(ctx context.Context, q *store.Queries, address string, epoch int64, sessionID uint64, amount *big.Int) error {
	return q.InsertLedgerEntry(ctx, address, epoch, EntryPotCredit, amount, "session", formatSessionID(sessionID))
}

func (l *Ledger) CreditReward(ctx context.Context, q *store.Queries, address string, epoch int64, amount *big.Int) error {
	return q.InsertLedgerEntry(ctx, address, epoch, EntryRewardClaim, amount, "epoch", strconv.FormatInt(epoch, 10))
}

func formatSessionID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
