// internal/api/leaderboard/handlers.go
package leaderboard

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/apiutil"
	"github.com/codr1/clubtable/internal/api/authz"
	"github.com/codr1/clubtable/internal/api/htmx"
	"github.com/codr1/clubtable/internal/config"
	"github.com/codr1/clubtable/internal/request"
	"github.com/codr1/clubtable/internal/stats"
	boardtempl "github.com/codr1/clubtable/internal/templates/components/leaderboard"
	"github.com/codr1/clubtable/internal/templates/layouts"
)

const (
	leaderboardQueryTimeout = 10 * time.Second
	clubPath                = "/leaderboard"
	teamPath                = "/leaderboard/team"
)

var (
	queries  stats.Queries
	pageSize = config.DefaultLeaderboardPageSize
)

type pageResponse struct {
	Entries []stats.Entry `json:"entries"`
	Page    int           `json:"page"`
	Pages   int           `json:"pages"`
	Total   int           `json:"total"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q stats.Queries, cfg *config.Config) {
	queries = q
	if cfg != nil && cfg.Leaderboard.PageSize > 0 {
		pageSize = cfg.Leaderboard.PageSize
	}
}

// GET /leaderboard?page=N
func HandleLeaderboardPage(w http.ResponseWriter, r *http.Request) {
	renderBoard(w, r, nil, clubPath, "Classement du club")
}

// GET /leaderboard/team?page=N
func HandleTeamLeaderboardPage(w http.ResponseWriter, r *http.Request) {
	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}
	renderBoard(w, r, stats.TeamScope(user.Teams), teamPath, "Classement de mes équipes")
}

// GET /api/v1/leaderboard/chart.png?scope=team
func HandleLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var scope stats.Scope
	if r.URL.Query().Get("scope") == "team" {
		user := apiutil.RequireUser(w, r)
		if user == nil {
			return
		}
		scope = stats.TeamScope(user.Teams)
	}

	ctx, cancel := context.WithTimeout(r.Context(), leaderboardQueryTimeout)
	defer cancel()

	entries, club, err := stats.Load(ctx, queries, scope)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build leaderboard")
		http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
		return
	}

	png, err := stats.RenderChart(entries, stats.PaletteFor(club.Teams))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render leaderboard chart")
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		logger.Error().Err(err).Msg("Failed to write leaderboard chart")
	}
}

func renderBoard(w http.ResponseWriter, r *http.Request, scope stats.Scope, basePath, title string) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page, err := apiutil.ParseNonNegativeIntField(request.QueryValue(r, "page"), "page", 1)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}
	if page < 1 {
		page = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), leaderboardQueryTimeout)
	defer cancel()

	entries, club, err := stats.Load(ctx, queries, scope)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build leaderboard")
		http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
		return
	}

	rows, pages := stats.Page(entries, page-1, pageSize)
	if pages > 0 && page > pages {
		page = pages
	}

	if apiutil.WantsJSON(r) {
		if rows == nil {
			rows = []stats.Entry{}
		}
		if err := apiutil.WriteJSON(w, http.StatusOK, pageResponse{Entries: rows, Page: page, Pages: pages, Total: len(entries)}); err != nil {
			logger.Error().Err(err).Msg("Failed to write leaderboard response")
		}
		return
	}

	user := authz.UserFromContext(r.Context())
	view := boardtempl.View{
		Entries:  rows,
		Page:     page,
		Pages:    pages,
		PageSize: pageSize,
		BasePath: basePath,
		Title:    title,
		Colors:   layouts.NewTeamColors(club.Teams),

		Exportable: authz.IsAdmin(user),
	}
	component := boardtempl.Board(view)
	if !htmx.IsRequest(r) {
		component = layouts.Base(layouts.Page{Title: title, User: user}, component)
	}
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render leaderboard", "Failed to render page")
}
