// Package vault talks to the external yield vault. The vault's share
// accounting is its own business; this client only reads balances and
// drives the yield-harvest calls.
package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrVault = errors.New("fee_vault_error")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Balance returns the address's current vault balance. The vault is
// the ground truth; the engine never mirrors deposits or withdrawals.
func (c *Client) Balance(ctx context.Context, address string) (*big.Int, error) {
	u := c.baseURL + "/balance?address=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVault, err)
	}
	var out struct {
		Balance string `json:"balance"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return parseAmount(out.Balance)
}

// AdminWithdraw pulls harvested reward-source tokens out of the vault
// to the given account.
func (c *Client) AdminWithdraw(ctx context.Context, amount *big.Int, to string) (*big.Int, error) {
	body := map[string]any{"amount": amount.String(), "to": to}
	var out struct {
		Amount string `json:"amount"`
	}
	if err := c.post(ctx, "/admin-withdraw", body, &out); err != nil {
		return nil, err
	}
	return parseAmount(out.Amount)
}

// ClaimEmissions claims accrued emissions for the configured reserves
// and reports the claimed amount.
func (c *Client) ClaimEmissions(ctx context.Context, reserveTokenIDs []int32, to string) (*big.Int, error) {
	body := map[string]any{"reserve_token_ids": reserveTokenIDs, "to": to}
	var out struct {
		Amount string `json:"amount"`
	}
	if err := c.post(ctx, "/claim-emissions", body, &out); err != nil {
		return nil, err
	}
	return parseAmount(out.Amount)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVault, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVault, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVault, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrVault, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrVault, err)
	}
	return nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: bad amount %q", ErrVault, s)
	}
	return v, nil
}
