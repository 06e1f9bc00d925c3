// internal/api/exports/handlers.go
package exports

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/apiutil"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/export"
	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/stats"
)

const exportQueryTimeout = 15 * time.Second

type exportQueries interface {
	stats.Queries
	ListMatchesBetween(ctx context.Context, arg dbgen.ListMatchesBetweenParams) ([]dbgen.Match, error)
}

var queries exportQueries

func InitHandlers(q exportQueries) {
	queries = q
}

// GET /api/v1/exports/matches.xlsx?from=&to=
func HandleMatchesExport(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exportQueryTimeout)
	defer cancel()

	var rows []dbgen.Match
	if from == "" && to == "" {
		rows, err = queries.ListMatches(ctx)
	} else {
		rows, err = queries.ListMatchesBetween(ctx, dbgen.ListMatchesBetweenParams{
			FromDate: apiutil.FirstNonEmpty(from, "0000-01-01"),
			ToDate:   apiutil.FirstNonEmpty(to, "9999-12-31"),
		})
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list matches for export")
		http.Error(w, "Failed to export matches", http.StatusInternalServerError)
		return
	}
	club, err := models.LoadClub(ctx, queries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load club for export")
		http.Error(w, "Failed to export matches", http.StatusInternalServerError)
		return
	}

	data, err := export.Matches(models.MatchesFromDB(rows), designation.NewCodec(club.TeamNames()))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build matches workbook")
		http.Error(w, "Failed to export matches", http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, r, "matchs.xlsx", data)
}

// GET /api/v1/exports/leaderboard.xlsx
func HandleLeaderboardExport(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exportQueryTimeout)
	defer cancel()

	entries, _, err := stats.Load(ctx, queries, nil)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build leaderboard for export")
		http.Error(w, "Failed to export leaderboard", http.StatusInternalServerError)
		return
	}

	data, err := export.Leaderboard(entries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build leaderboard workbook")
		http.Error(w, "Failed to export leaderboard", http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, r, "classement.xlsx", data)
}

func dateRange(r *http.Request) (string, string, error) {
	query := r.URL.Query()
	var from, to string
	var err error
	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		if from, err = apiutil.ParseDateField(raw, "from"); err != nil {
			return "", "", err
		}
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		if to, err = apiutil.ParseDateField(raw, "to"); err != nil {
			return "", "", err
		}
	}
	if from != "" && to != "" && from > to {
		return "", "", apiutil.FieldError{Field: "from", Reason: "must not be after to"}
	}
	return from, to, nil
}

func writeWorkbook(w http.ResponseWriter, r *http.Request, filename string, data []byte) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("file", filename).Msg("Failed to write export")
	}
}
