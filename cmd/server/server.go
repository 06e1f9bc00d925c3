// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api"
	"github.com/codr1/clubtable/internal/api/auth"
	"github.com/codr1/clubtable/internal/api/exports"
	"github.com/codr1/clubtable/internal/api/leaderboard"
	"github.com/codr1/clubtable/internal/api/matches"
	"github.com/codr1/clubtable/internal/api/members"
	"github.com/codr1/clubtable/internal/api/teams"
	"github.com/codr1/clubtable/internal/config"
	appdb "github.com/codr1/clubtable/internal/db"
	"github.com/codr1/clubtable/internal/ratelimit"
)

func newServer(cfg *config.Config, database *appdb.DB, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	auth.InitHandlers(database.Queries, cfg, limiter)
	matches.InitHandlers(database, cfg)
	teams.InitHandlers(database.Queries)
	members.InitHandlers(database.Queries)
	leaderboard.InitHandlers(database.Queries, cfg)
	exports.InitHandlers(database.Queries)

	registerRoutes(router)

	// The last middleware listed runs first.
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func userOnly(h http.HandlerFunc) http.Handler {
	return api.WithUserAuth(h)
}

func adminOnly(h http.HandlerFunc) http.Handler {
	return api.WithAdminAuth(h)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/matches", http.StatusSeeOther)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("POST /logout", auth.HandleLogout)

	// Match sheets
	mux.Handle("GET /matches", userOnly(matches.HandleMatchesPage))
	mux.Handle("GET /matches/{id}", userOnly(matches.HandleMatchSheet))
	mux.Handle("PATCH /api/v1/matches/{id}/officials", userOnly(matches.HandleOfficialsUpdate))
	mux.Handle("GET /api/v1/matches/{id}/permissions", userOnly(matches.HandleMatchPermissions))
	mux.Handle("GET /api/v1/roster/options", userOnly(matches.HandleRosterOptions))

	// Administration
	mux.Handle("GET /admin/matches", adminOnly(matches.HandleAdminMatchesPage))
	mux.Handle("POST /api/v1/matches", adminOnly(matches.HandleMatchCreate))
	mux.Handle("PUT /api/v1/matches/{id}", adminOnly(matches.HandleMatchUpdate))
	mux.Handle("DELETE /api/v1/matches/{id}", adminOnly(matches.HandleMatchDelete))
	mux.Handle("GET /api/v1/teams", adminOnly(teams.HandleTeamsList))
	mux.Handle("POST /api/v1/teams", adminOnly(teams.HandleTeamCreate))
	mux.Handle("GET /api/v1/members", adminOnly(members.HandleMembersList))
	mux.Handle("POST /api/v1/members", adminOnly(members.HandleMemberCreate))

	// Leaderboard
	mux.Handle("GET /leaderboard", userOnly(leaderboard.HandleLeaderboardPage))
	mux.Handle("GET /leaderboard/team", userOnly(leaderboard.HandleTeamLeaderboardPage))
	mux.Handle("GET /api/v1/leaderboard/chart.png", userOnly(leaderboard.HandleLeaderboardChart))

	// Exports
	mux.Handle("GET /api/v1/exports/matches.xlsx", adminOnly(exports.HandleMatchesExport))
	mux.Handle("GET /api/v1/exports/leaderboard.xlsx", adminOnly(exports.HandleLeaderboardExport))

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
