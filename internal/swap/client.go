// Package swap talks to the external swap router. Routing and pricing
// are the venue's concern; the engine measures the result as a balance
// delta and never trusts a quoted output.
package swap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"
)

var ErrSwap = errors.New("swap_error")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SwapExactIn swaps amountIn of path[0] into path[len-1] for `to`,
// failing if the venue cannot deliver minAmountOut by the deadline.
func (c *Client) SwapExactIn(ctx context.Context, path []string, amountIn, minAmountOut *big.Int, to string, deadline time.Time) error {
	body := map[string]any{
		"path":           path,
		"amount_in":      amountIn.String(),
		"min_amount_out": minAmountOut.String(),
		"to":             to,
		"deadline":       deadline.Unix(),
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSwap, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/swap-exact-in", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSwap, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSwap, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrSwap, resp.StatusCode)
	}
	return nil
}
