package token

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBalanceOfRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/balance-of" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("token") != "USDC" || q.Get("account") != "engine" {
			t.Fatalf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "987654321"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.BalanceOf(context.Background(), "USDC", "engine")
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	if got.Int64() != 987654321 {
		t.Fatalf("balance = %s", got)
	}
}

func TestTransferPostsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transfer" || r.Method != http.MethodPost {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Token  string `json:"token"`
			To     string `json:"to"`
			Amount string `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Token != "USDC" || body.To != "alice" || body.Amount != "250" {
			t.Fatalf("body = %+v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Transfer(context.Background(), "USDC", "alice", big.NewInt(250)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
}

func TestTransferFailureWrapsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Transfer(context.Background(), "USDC", "alice", big.NewInt(1)); !errors.Is(err, ErrToken) {
		t.Fatalf("error = %v, want ErrToken", err)
	}
}
