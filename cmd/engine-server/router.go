package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"faction-arena/internal/config"
	"faction-arena/internal/engine"
	"faction-arena/internal/logging"
	"faction-arena/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/rs/zerolog/log"
)

func newRouter(e *engine.Engine, st *store.Store, cfg config.ServerConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())

		r.Post("/players/register", registerPlayerHandler(e))
		r.Get("/players/{address}", getPlayerHandler(e))
		r.Get("/players/{address}/epoch", getEpochPlayerHandler(e))
		r.Get("/epochs/current", getEpochHandler(e, true))
		r.Get("/epochs/{number}", getEpochHandler(e, false))
		r.Post("/epochs/cycle", cycleEpochHandler(e))

		r.Group(func(r chi.Router) {
			r.Use(playerAuthMiddleware(e))
			r.Post("/factions/select", selectFactionHandler(e))
			r.Post("/epochs/{number}/claim", claimRewardHandler(e))
			r.Get("/epochs/{number}/claim", getClaimHandler(e))
		})

		r.Group(func(r chi.Router) {
			r.Use(gameAuthMiddleware(e))
			r.Post("/games/start", startGameHandler(e))
			r.Post("/games/end", endGameHandler(e))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuthMiddleware(cfg.AdminAPIKey))
			r.Get("/games", listGamesHandler(e))
			r.Post("/games", addGameHandler(e))
			r.Delete("/games/{game_addr}", removeGameHandler(e))
			r.Get("/config", getConfigHandler(e))
			r.Put("/config", updateConfigHandler(e))
			r.Post("/pause", setPausedHandler(e, true))
			r.Post("/unpause", setPausedHandler(e, false))
			r.Post("/players/{address}/migrate", migratePlayerHandler(e))
			r.Get("/ledger", ledgerHandler(e))
		})
	})

	return r
}

func apiLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}

func logRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
