package main

import (
	"net/http"
	"reflect"
	"sort"
	"testing"

	"faction-arena/internal/config"
	"faction-arena/internal/engine"

	"github.com/go-chi/chi/v5"
)

func TestRouteSnapshot(t *testing.T) {
	// Route registration does not touch the database.
	e := engine.New(nil, nil, nil, nil, "")
	router := newRouter(e, nil, config.ServerConfig{AdminAPIKey: "admin-key"})

	var routes []string
	err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}
	sort.Strings(routes)

	expected := []string{
		"DELETE /api/admin/games/{game_addr}",
		"GET /api/admin/config",
		"GET /api/admin/games",
		"GET /api/admin/ledger",
		"GET /api/epochs/current",
		"GET /api/epochs/{number}",
		"GET /api/epochs/{number}/claim",
		"GET /api/players/{address}",
		"GET /api/players/{address}/epoch",
		"GET /healthz",
		"POST /api/admin/games",
		"POST /api/admin/pause",
		"POST /api/admin/players/{address}/migrate",
		"POST /api/admin/unpause",
		"POST /api/epochs/cycle",
		"POST /api/epochs/{number}/claim",
		"POST /api/factions/select",
		"POST /api/games/end",
		"POST /api/games/start",
		"POST /api/players/register",
		"PUT /api/admin/config",
	}
	sort.Strings(expected)

	if !reflect.DeepEqual(routes, expected) {
		t.Fatalf("route snapshot mismatch\nexpected=%v\nactual=%v", expected, routes)
	}
}
