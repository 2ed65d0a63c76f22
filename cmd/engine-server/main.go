package main

import (
	"context"
	"net/http"
	"time"

	"faction-arena/internal/config"
	"faction-arena/internal/engine"
	"faction-arena/internal/logging"
	"faction-arena/internal/store"
	"faction-arena/internal/swap"
	"faction-arena/internal/token"
	"faction-arena/internal/vault"

	"github.com/rs/zerolog/log"
)

func main() {
	app, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(app.Log)
	cfg := app.Server

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.ApplySchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("apply schema failed")
	}

	e := engine.New(
		st,
		vault.NewClient(cfg.VaultBaseURL),
		swap.NewClient(cfg.SwapBaseURL),
		token.NewClient(cfg.TokenBaseURL),
		cfg.EngineAccount,
	)
	if err := e.Bootstrap(context.Background(), seedConfig(cfg)); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	st.StartJanitor(context.Background(), time.Duration(cfg.JanitorIntervalSecs)*time.Second)

	r := newRouter(e, st, cfg)
	logRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func seedConfig(cfg config.ServerConfig) *store.GlobalConfig {
	return &store.GlobalConfig{
		VaultAddr:         cfg.VaultAddr,
		SwapRouterAddr:    cfg.SwapRouterAddr,
		RewardSourceToken: cfg.RewardSourceToken,
		RewardPayoutToken: cfg.RewardPayoutToken,
		EpochDurationSecs: cfg.EpochDurationSecs,
		ReserveTokenIDs:   cfg.ReserveTokenIDs,
	}
}
