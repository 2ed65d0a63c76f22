package config

import "github.com/caarlos0/env/v11"

// AppConfig is everything the engine server reads from the
// environment, parsed in one pass.
type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	var cfg AppConfig
	err := env.Parse(&cfg)
	return cfg, err
}
