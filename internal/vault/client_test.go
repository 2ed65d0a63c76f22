package vault

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBalanceRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/balance" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("address"); got != "alice" {
			t.Fatalf("address = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "12345678901234567890"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Balance(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got.String() != "12345678901234567890" {
		t.Fatalf("balance = %s", got)
	}
}

func TestClaimEmissionsPostsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/claim-emissions" || r.Method != http.MethodPost {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		var body struct {
			ReserveTokenIDs []int32 `json:"reserve_token_ids"`
			To              string  `json:"to"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.ReserveTokenIDs) != 2 || body.To != "engine" {
			t.Fatalf("body = %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"amount": "42"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.ClaimEmissions(context.Background(), []int32{1, 3}, "engine")
	if err != nil {
		t.Fatalf("ClaimEmissions: %v", err)
	}
	if got.Int64() != 42 {
		t.Fatalf("claimed = %s", got)
	}
}

func TestErrorsWrapSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Balance(context.Background(), "alice"); !errors.Is(err, ErrVault) {
		t.Fatalf("error = %v, want ErrVault", err)
	}

	srv.Close()
	if _, err := c.Balance(context.Background(), "alice"); !errors.Is(err, ErrVault) {
		t.Fatalf("transport error = %v, want ErrVault", err)
	}
}

func TestBadAmountRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"balance": "not-a-number"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Balance(context.Background(), "alice"); !errors.Is(err, ErrVault) {
		t.Fatalf("error = %v, want ErrVault", err)
	}
}
