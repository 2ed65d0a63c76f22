package engine

import (
	"errors"

	"faction-arena/internal/fixedpoint"
	"faction-arena/internal/swap"
	"faction-arena/internal/token"
	"faction-arena/internal/vault"
)

// The error surface is a closed enumeration; every failure maps to
// exactly one of these and aborts the whole invocation.
var (
	// Validation.
	ErrInvalidFaction = errors.New("invalid_faction")
	ErrInvalidAmount  = errors.New("invalid_amount")

	// State preconditions.
	ErrFactionNotSelected    = errors.New("faction_not_selected")
	ErrPlayerNotFound        = errors.New("player_not_found")
	ErrGameNotWhitelisted    = errors.New("game_not_whitelisted")
	ErrSessionAlreadyExists  = errors.New("session_already_exists")
	ErrSessionNotFound       = errors.New("session_not_found")
	ErrInvalidGameOutcome    = errors.New("invalid_game_outcome")
	ErrEpochNotReady         = errors.New("epoch_not_ready")
	ErrEpochAlreadyFinalized = errors.New("epoch_already_finalized")
	ErrEpochNotFinalized     = errors.New("epoch_not_finalized")
	ErrRewardAlreadyClaimed  = errors.New("reward_already_claimed")
	ErrNotWinningFaction     = errors.New("not_winning_faction")
	ErrNoRewardsAvailable    = errors.New("no_rewards_available")
	ErrEnginePaused          = errors.New("engine_paused")

	// Economic preconditions.
	ErrInsufficientFactionPoints = errors.New("insufficient_faction_points")
	ErrOverflow                  = fixedpoint.ErrOverflow

	// External dependencies. Retryable by the caller.
	ErrFeeVault                = vault.ErrVault
	ErrSwap                    = swap.ErrSwap
	ErrTransfer                = token.ErrToken
	ErrProofVerificationFailed = errors.New("proof_verification_failed")
)
