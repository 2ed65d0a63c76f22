package config

import "github.com/caarlos0/env/v11"

// TestConfig points store-backed tests at a disposable database; each
// test creates and drops its own schema. Tests skip when
// TEST_POSTGRES_DSN is unset.
type TestConfig struct {
	PostgresDSN string `env:"TEST_POSTGRES_DSN,required,notEmpty"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
