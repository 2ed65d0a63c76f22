package config

import "testing"

func TestLoadBotDefaults(t *testing.T) {
	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.EngineURL != "http://localhost:8080" {
		t.Fatalf("EngineURL = %q, want http://localhost:8080", cfg.EngineURL)
	}
	if cfg.Rounds != 1 {
		t.Fatalf("Rounds = %d, want 1", cfg.Rounds)
	}
}

func TestLoadBotOverrides(t *testing.T) {
	t.Setenv("ENGINE_URL", "http://127.0.0.1:9000")
	t.Setenv("GAME_API_KEY", "key-a")
	t.Setenv("WAGER_FP", "5000000")

	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.EngineURL != "http://127.0.0.1:9000" {
		t.Fatalf("EngineURL = %q", cfg.EngineURL)
	}
	if cfg.GameAPIKey != "key-a" || cfg.WagerFP != 5000000 {
		t.Fatalf("unexpected bot config: %+v", cfg)
	}
}
