package testutil

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"faction-arena/internal/swap"
	"faction-arena/internal/token"
	"faction-arena/internal/vault"
)

// FakeServices is an in-memory stand-in for the fee vault, the swap
// router and the token service, wired together so a harvest moves
// value the way the real collaborators would. One instance satisfies
// all three engine client interfaces.
type FakeServices struct {
	mu sync.Mutex

	// VaultBalances holds per-player vault deposits.
	VaultBalances map[string]*big.Int
	// Emissions is the pending source-token yield the next claim
	// returns.
	Emissions *big.Int
	// TokenBalances is tokenID -> account -> balance.
	TokenBalances map[string]map[string]*big.Int
	// SwapRateNum/Den scale source amounts into payout amounts.
	SwapRateNum, SwapRateDen int64

	FailVault    bool
	FailSwap     bool
	FailTransfer bool
}

func NewFakeServices() *FakeServices {
	return &FakeServices{
		VaultBalances: make(map[string]*big.Int),
		Emissions:     big.NewInt(0),
		TokenBalances: make(map[string]map[string]*big.Int),
		SwapRateNum:   1,
		SwapRateDen:   1,
	}
}

func (f *FakeServices) SetVaultBalance(address string, amount *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VaultBalances[address] = new(big.Int).Set(amount)
}

func (f *FakeServices) SetEmissions(amount *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Emissions = new(big.Int).Set(amount)
}

func (f *FakeServices) CreditToken(tokenID, account string, amount *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credit(tokenID, account, amount)
}

func (f *FakeServices) TokenBalance(tokenID, account string) *big.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.balance(tokenID, account))
}

func (f *FakeServices) credit(tokenID, account string, amount *big.Int) {
	accounts := f.TokenBalances[tokenID]
	if accounts == nil {
		accounts = make(map[string]*big.Int)
		f.TokenBalances[tokenID] = accounts
	}
	cur := accounts[account]
	if cur == nil {
		cur = big.NewInt(0)
	}
	accounts[account] = new(big.Int).Add(cur, amount)
}

func (f *FakeServices) balance(tokenID, account string) *big.Int {
	if accounts := f.TokenBalances[tokenID]; accounts != nil {
		if b := accounts[account]; b != nil {
			return b
		}
	}
	return big.NewInt(0)
}

// sourceToken is the token id the fake vault emits yield in.
const sourceToken = "SOURCE"

func (f *FakeServices) Balance(_ context.Context, address string) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailVault {
		return nil, fmt.Errorf("%w: fake outage", vault.ErrVault)
	}
	b := f.VaultBalances[address]
	if b == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(b), nil
}

func (f *FakeServices) ClaimEmissions(_ context.Context, _ []int32, _ string) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailVault {
		return nil, fmt.Errorf("%w: fake outage", vault.ErrVault)
	}
	claimed := f.Emissions
	f.Emissions = big.NewInt(0)
	return claimed, nil
}

func (f *FakeServices) AdminWithdraw(_ context.Context, amount *big.Int, to string) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailVault {
		return nil, fmt.Errorf("%w: fake outage", vault.ErrVault)
	}
	f.credit(sourceToken, to, amount)
	return new(big.Int).Set(amount), nil
}

func (f *FakeServices) SwapExactIn(_ context.Context, path []string, amountIn, _ *big.Int, to string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailSwap {
		return fmt.Errorf("%w: fake outage", swap.ErrSwap)
	}
	if len(path) < 2 {
		return fmt.Errorf("%w: short path", swap.ErrSwap)
	}
	f.credit(sourceToken, to, new(big.Int).Neg(amountIn))
	out := new(big.Int).Mul(amountIn, big.NewInt(f.SwapRateNum))
	out.Quo(out, big.NewInt(f.SwapRateDen))
	f.credit(path[len(path)-1], to, out)
	return nil
}

func (f *FakeServices) BalanceOf(_ context.Context, tokenID string, account string) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.balance(tokenID, account)), nil
}

func (f *FakeServices) Transfer(_ context.Context, tokenID string, to string, amount *big.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailTransfer {
		return fmt.Errorf("%w: fake outage", token.ErrToken)
	}
	f.credit(tokenID, to, amount)
	return nil
}
