package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
	if cfg.File != "" {
		t.Fatalf("File = %q, want stdout default", cfg.File)
	}
	if cfg.FileMaxMB != 10 {
		t.Fatalf("FileMaxMB = %d, want 10", cfg.FileMaxMB)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("LOG_FILE", "/var/log/engine.log")
	t.Setenv("LOG_FILE_MAX_MB", "5")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || !cfg.Pretty {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
	if cfg.File != "/var/log/engine.log" || cfg.FileMaxMB != 5 {
		t.Fatalf("unexpected file config: %+v", cfg)
	}
}
