// internal/api/teams/handlers.go
package teams

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/apiutil"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/models"
)

const teamQueryTimeout = 5 * time.Second

var (
	queries     teamQueries
	queriesOnce sync.Once
)

type teamQueries interface {
	ListTeams(ctx context.Context) ([]dbgen.Team, error)
	GetTeamByName(ctx context.Context, name string) (dbgen.Team, error)
	CreateTeam(ctx context.Context, arg dbgen.CreateTeamParams) (dbgen.Team, error)
}

type teamRequest struct {
	Name           string  `json:"name"`
	PrimaryColor   string  `json:"primaryColor"`
	AlternateColor string  `json:"alternateColor"`
	ImageURL       *string `json:"imageUrl"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

// GET /api/v1/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	rows, err := q.ListTeams(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Failed to load teams", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": models.TeamsFromDB(rows)}); err != nil {
		logger.Error().Err(err).Msg("Failed to write teams list response")
	}
}

// POST /api/v1/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeTeamRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	team := models.NewTeam(req.Name, req.PrimaryColor, req.AlternateColor)
	if err := team.Validate(); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	if _, err := q.GetTeamByName(ctx, team.Name); err == nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusConflict, Message: "Team name already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Str("team", team.Name).Msg("Failed to check team name uniqueness")
		http.Error(w, "Failed to validate team name", http.StatusInternalServerError)
		return
	}

	created, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{
		Name:           team.Name,
		PrimaryColor:   team.PrimaryColor,
		AlternateColor: team.AlternateColor,
		ImageUrl:       apiutil.ToNullString(req.ImageURL),
	})
	if err != nil {
		if apiutil.IsSQLiteUniqueViolation(err) {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusConflict, Message: "Team name already exists", Err: err})
			return
		}
		logger.Error().Err(err).Str("team", team.Name).Msg("Failed to create team")
		http.Error(w, "Failed to create team", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("team_id", created.ID).Str("team", created.Name).Msg("Team created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, models.TeamFromDB(created)); err != nil {
		logger.Error().Err(err).Int64("team_id", created.ID).Msg("Failed to write team response")
	}
}

func decodeTeamRequest(r *http.Request) (teamRequest, error) {
	var req teamRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, err
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Name = r.FormValue("name")
	req.PrimaryColor = r.FormValue("primaryColor")
	req.AlternateColor = r.FormValue("alternateColor")
	if imageURL := strings.TrimSpace(r.FormValue("imageUrl")); imageURL != "" {
		req.ImageURL = &imageURL
	}
	return req, nil
}

func loadQueries() teamQueries {
	return queries
}
