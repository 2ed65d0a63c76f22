package store

import (
	"math/big"
	"time"
)

type GlobalConfig struct {
	VaultAddr         string
	SwapRouterAddr    string
	RewardSourceToken string
	RewardPayoutToken string
	EpochDurationSecs int64
	ReserveTokenIDs   []int32
	Paused            bool
	UpdatedAt         time.Time
}

type Account struct {
	Address    string
	APIKeyHash string
	CreatedAt  time.Time
}

// Player is the cross-epoch record. TimeMultiplierAnchor is a unix
// timestamp; LastEpochBalance is the vault balance observed the last
// time the position was evaluated.
type Player struct {
	Address              string
	SelectedFaction      int32
	TimeMultiplierAnchor int64
	LastEpochBalance     *big.Int
}

type EpochPlayer struct {
	EpochNumber          int64
	Address              string
	EpochFaction         *int32
	EpochBalanceSnapshot *big.Int
	AvailableFP          *big.Int
	TotalFPContributed   *big.Int
	ExpiresAt            time.Time
}

type EpochInfo struct {
	EpochNumber    int64
	StartTime      time.Time
	EndTime        time.Time
	IsFinalized    bool
	WinningFaction *int32
	RewardPool     *big.Int
}

type FactionStanding struct {
	FactionID   int32
	Contributed *big.Int
}

const (
	SessionPending = "pending"
	SessionSettled = "settled"
)

type GameSession struct {
	SessionID uint64
	GameAddr  string
	Player1   string
	Player2   string
	Wager1    *big.Int
	Wager2    *big.Int
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type RewardClaim struct {
	Address     string
	EpochNumber int64
	Amount      *big.Int
	ClaimedAt   time.Time
}

type Game struct {
	GameAddr   string
	APIKeyHash string
	AddedAt    time.Time
}

type LedgerEntry struct {
	ID          string
	Address     string
	EpochNumber int64
	EntryType   string
	Amount      *big.Int
	RefType     string
	RefID       string
	CreatedAt   time.Time
}
