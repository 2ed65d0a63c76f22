package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// Collaborator endpoints.
	VaultBaseURL  string `env:"VAULT_BASE_URL" envDefault:"http://localhost:9101"`
	SwapBaseURL   string `env:"SWAP_BASE_URL" envDefault:"http://localhost:9102"`
	TokenBaseURL  string `env:"TOKEN_BASE_URL" envDefault:"http://localhost:9103"`
	EngineAccount string `env:"ENGINE_ACCOUNT" envDefault:"engine"`

	// Seed values for the global config row; applied only when the row
	// does not exist yet. Admin updates win afterward.
	VaultAddr         string  `env:"VAULT_ADDR" envDefault:"fee-vault"`
	SwapRouterAddr    string  `env:"SWAP_ROUTER_ADDR" envDefault:"swap-router"`
	RewardSourceToken string  `env:"REWARD_SOURCE_TOKEN" envDefault:"BLND"`
	RewardPayoutToken string  `env:"REWARD_PAYOUT_TOKEN" envDefault:"USDC"`
	EpochDurationSecs int64   `env:"EPOCH_DURATION_SECS" envDefault:"345600"`
	ReserveTokenIDs   []int32 `env:"RESERVE_TOKEN_IDS" envDefault:"1"`

	JanitorIntervalSecs int `env:"JANITOR_INTERVAL_SECS" envDefault:"60"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
