package config

import "github.com/caarlos0/env/v11"

// BotConfig configures the guess-bot example game client.
type BotConfig struct {
	EngineURL  string `env:"ENGINE_URL" envDefault:"http://localhost:8080"`
	GameAddr   string `env:"GAME_ADDR" envDefault:"guess-game"`
	GameAPIKey string `env:"GAME_API_KEY" envDefault:""`
	Player1    string `env:"PLAYER1" envDefault:""`
	Player2    string `env:"PLAYER2" envDefault:""`
	WagerFP    int64  `env:"WAGER_FP" envDefault:"1000000000"`
	Rounds     int    `env:"ROUNDS" envDefault:"1"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
