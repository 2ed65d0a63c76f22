package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/arena?sslmode=disable")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.EpochDurationSecs != 345600 {
		t.Fatalf("EpochDurationSecs = %d, want 345600", cfg.EpochDurationSecs)
	}
	if len(cfg.ReserveTokenIDs) != 1 || cfg.ReserveTokenIDs[0] != 1 {
		t.Fatalf("ReserveTokenIDs = %v, want [1]", cfg.ReserveTokenIDs)
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/arena?sslmode=disable")
	t.Setenv("EPOCH_DURATION_SECS", "600")
	t.Setenv("RESERVE_TOKEN_IDS", "1,3")
	t.Setenv("REWARD_PAYOUT_TOKEN", "USDC-test")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.EpochDurationSecs != 600 {
		t.Fatalf("EpochDurationSecs = %d, want 600", cfg.EpochDurationSecs)
	}
	if len(cfg.ReserveTokenIDs) != 2 || cfg.ReserveTokenIDs[1] != 3 {
		t.Fatalf("ReserveTokenIDs = %v, want [1 3]", cfg.ReserveTokenIDs)
	}
	if cfg.RewardPayoutToken != "USDC-test" {
		t.Fatalf("RewardPayoutToken = %q", cfg.RewardPayoutToken)
	}
}
