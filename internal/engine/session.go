package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"

	"faction-arena/internal/fixedpoint"
	"faction-arena/internal/store"
)

// StartGame escrows both players' wagers and opens a pending session.
// First contact with the current epoch locks each player's faction
// and snapshots their faction points from the live vault balance.
// The session id is chosen by the game and must be unused.
func (e *Engine) StartGame(ctx context.Context, gameAddr string, sessionID uint64, player1, player2 string, wager1, wager2 *big.Int) error {
	if err := e.requireNotPaused(ctx); err != nil {
		return err
	}
	ok, err := e.store.Q().IsGameWhitelisted(ctx, gameAddr)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGameNotWhitelisted
	}
	// A player cannot be matched against themselves: the pairing nets
	// them zero but would still count the losing wager toward their
	// faction's standing.
	if player1 == player2 {
		return ErrInvalidGameOutcome
	}
	taken, err := e.store.Q().SessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSessionAlreadyExists
	}
	if wager1 == nil || wager2 == nil || wager1.Sign() <= 0 || wager2.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !fixedpoint.InRange(wager1) || !fixedpoint.InRange(wager2) {
		return ErrOverflow
	}

	// Vault reads happen before the transaction opens; the snapshot is
	// whatever the vault reported at entry.
	bal1, err := e.vault.Balance(ctx, player1)
	if err != nil {
		return err
	}
	bal2, err := e.vault.Balance(ctx, player2)
	if err != nil {
		return err
	}

	err = e.store.InTx(ctx, func(q *store.Queries) error {
		epoch, err := q.CurrentEpochNumber(ctx)
		if err != nil {
			return err
		}
		if _, err := e.touchEpochPlayer(ctx, q, epoch, player1, bal1); err != nil {
			return err
		}
		if _, err := e.touchEpochPlayer(ctx, q, epoch, player2, bal2); err != nil {
			return err
		}
		if err := e.deductWager(ctx, q, epoch, player1, wager1); err != nil {
			return err
		}
		if err := e.deductWager(ctx, q, epoch, player2, wager2); err != nil {
			return err
		}
		if err := e.ledger.EscrowWager(ctx, q, player1, epoch, sessionID, wager1); err != nil {
			return err
		}
		if err := e.ledger.EscrowWager(ctx, q, player2, epoch, sessionID, wager2); err != nil {
			return err
		}
		sess := &store.GameSession{
			SessionID: sessionID,
			GameAddr:  gameAddr,
			Player1:   player1,
			Player2:   player2,
			Wager1:    wager1,
			Wager2:    wager2,
			Status:    store.SessionPending,
		}
		if err := q.CreateSession(ctx, sess); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrSessionAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("game", gameAddr).
		Uint64("session", sessionID).
		Str("player1", player1).
		Str("player2", player2).
		Msg("game_started")
	return nil
}

func (e *Engine) deductWager(ctx context.Context, q *store.Queries, epoch int64, address string, wager *big.Int) error {
	ep, err := q.GetEpochPlayer(ctx, epoch, address)
	if err != nil {
		return err
	}
	if ep.AvailableFP.Cmp(wager) < 0 {
		return ErrInsufficientFactionPoints
	}
	remaining, err := fixedpoint.Sub(ep.AvailableFP, wager)
	if err != nil {
		return err
	}
	return q.SetAvailableFP(ctx, epoch, address, remaining)
}

// EndGame settles a pending session. The submitted outcome must match
// the stored session exactly and carry a verifiable proof. The winner
// gets both wagers back as available points; only the loser's wager
// counts toward the winner's contribution and their faction standing.
func (e *Engine) EndGame(ctx context.Context, gameAddr string, sessionID uint64, proof []byte, outcome Outcome) error {
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		sess, err := q.GetPendingSession(ctx, sessionID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if sess.GameAddr != gameAddr ||
			outcome.GameAddr != sess.GameAddr ||
			outcome.SessionID != sess.SessionID ||
			outcome.Player1 != sess.Player1 ||
			outcome.Player2 != sess.Player2 {
			return ErrInvalidGameOutcome
		}
		if err := e.verifier.Verify(proof, outcome); err != nil {
			return fmt.Errorf("%w: %v", ErrProofVerificationFailed, err)
		}

		winner, loser := sess.Player1, sess.Player2
		loserWager := sess.Wager2
		if !outcome.Winner {
			winner, loser = sess.Player2, sess.Player1
			loserWager = sess.Wager1
		}
		pot, err := fixedpoint.Add(sess.Wager1, sess.Wager2)
		if err != nil {
			return err
		}

		epoch, err := q.CurrentEpochNumber(ctx)
		if err != nil {
			return err
		}
		// The winner's balance only matters when the session straddles
		// an epoch boundary and the epoch row does not exist yet.
		wep, err := q.GetEpochPlayer(ctx, epoch, winner)
		if errors.Is(err, store.ErrNotFound) {
			bal, verr := e.vault.Balance(ctx, winner)
			if verr != nil {
				return verr
			}
			wep, err = e.touchEpochPlayer(ctx, q, epoch, winner, bal)
		}
		if err != nil {
			return err
		}
		newAvail, err := fixedpoint.Add(wep.AvailableFP, pot)
		if err != nil {
			return err
		}
		if err := q.SetAvailableFP(ctx, epoch, winner, newAvail); err != nil {
			return err
		}
		if err := q.AddContributedFP(ctx, epoch, winner, loserWager); err != nil {
			return err
		}
		if wep.EpochFaction != nil {
			if err := q.AddStanding(ctx, epoch, *wep.EpochFaction, loserWager); err != nil {
				return err
			}
		}
		if err := e.ledger.CreditPot(ctx, q, winner, epoch, sessionID, pot); err != nil {
			return err
		}
		if err := e.ledger.BurnWager(ctx, q, loser, epoch, sessionID, loserWager); err != nil {
			return err
		}
		return q.SettleSession(ctx, sessionID)
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("game", gameAddr).
		Uint64("session", sessionID).
		Bool("player1_won", outcome.Winner).
		Msg("game_settled")
	return nil
}
