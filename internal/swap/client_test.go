package swap

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSwapExactInPostsBody(t *testing.T) {
	deadline := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/swap-exact-in" || r.Method != http.MethodPost {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Path         []string `json:"path"`
			AmountIn     string   `json:"amount_in"`
			MinAmountOut string   `json:"min_amount_out"`
			To           string   `json:"to"`
			Deadline     int64    `json:"deadline"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Path) != 2 || body.Path[0] != "BLND" || body.Path[1] != "USDC" {
			t.Fatalf("path = %v", body.Path)
		}
		if body.AmountIn != "500" || body.MinAmountOut != "0" || body.To != "engine" {
			t.Fatalf("body = %+v", body)
		}
		if body.Deadline != deadline.Unix() {
			t.Fatalf("deadline = %d, want %d", body.Deadline, deadline.Unix())
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SwapExactIn(context.Background(), []string{"BLND", "USDC"}, big.NewInt(500), big.NewInt(0), "engine", deadline)
	if err != nil {
		t.Fatalf("SwapExactIn: %v", err)
	}
}

func TestSwapFailureWrapsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SwapExactIn(context.Background(), []string{"A", "B"}, big.NewInt(1), big.NewInt(0), "engine", time.Now())
	if !errors.Is(err, ErrSwap) {
		t.Fatalf("error = %v, want ErrSwap", err)
	}
}
