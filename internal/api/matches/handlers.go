// internal/api/matches/handlers.go
package matches

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/apiutil"
	"github.com/codr1/clubtable/internal/api/authz"
	"github.com/codr1/clubtable/internal/api/htmx"
	"github.com/codr1/clubtable/internal/config"
	appdb "github.com/codr1/clubtable/internal/db"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/roster"
	matchtempl "github.com/codr1/clubtable/internal/templates/components/matches"
	"github.com/codr1/clubtable/internal/templates/layouts"
)

const (
	matchQueryTimeout = 5 * time.Second
	matchIDParam      = "id"
)

var (
	store     *appdb.DB
	appConfig *config.Config
	now       = time.Now
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, cfg *config.Config) {
	if database == nil {
		return
	}
	store = database
	appConfig = cfg
}

// matchRequest is the administrator payload. Nil fields keep their current value on
// update and take the creation default on create.
type matchRequest struct {
	Date            *string                  `json:"date"`
	Time            *string                  `json:"time"`
	MeetingTime     *string                  `json:"meetingTime"`
	Category        *string                  `json:"category"`
	Opponent        *string                  `json:"opponent"`
	AlternateJersey *bool                    `json:"alternateJersey"`
	ClubReferee     *bool                    `json:"clubReferee"`
	Designation     *string                  `json:"designation"`
	Assignments     []designation.Assignment `json:"assignments"`
	Scorer          *string                  `json:"scorer"`
	Timekeeper      *string                  `json:"timekeeper"`
	HallManager     *string                  `json:"hallManager"`
	BarManager      *string                  `json:"barManager"`
	Referee1        *string                  `json:"referee1"`
	Referee2        *string                  `json:"referee2"`
}

type permissionsResponse struct {
	MatchID     int64               `json:"matchId"`
	Roles       designation.RoleSet `json:"roles"`
	Slots       []models.Slot       `json:"slots"`
	ClubReferee bool                `json:"clubReferee"`
}

// GET /matches
func HandleMatchesPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	user := authz.UserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := database.Queries.ListMatches(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list matches")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}
	matches := models.MatchesFromDB(rows)

	if apiutil.WantsJSON(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches}); err != nil {
			logger.Error().Err(err).Msg("Failed to write matches response")
		}
		return
	}

	club, err := models.LoadClub(ctx, database.Queries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load club")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}

	var viewerTeams []string
	if user != nil {
		viewerTeams = user.Teams
	}
	codec := designation.NewCodec(club.TeamNames())
	list := matchtempl.MatchList(matchtempl.NewRows(matches, codec, viewerTeams, authz.IsAdmin(user)), layouts.NewTeamColors(club.Teams), false)
	renderPage(w, r, "Matchs", list)
}

// GET /admin/matches
func HandleAdminMatchesPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := database.Queries.ListMatches(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list matches")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}
	club, err := models.LoadClub(ctx, database.Queries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load club")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}

	codec := designation.NewCodec(club.TeamNames())
	page := matchtempl.AdminPage(matchtempl.NewRows(models.MatchesFromDB(rows), codec, nil, true), layouts.NewTeamColors(club.Teams))
	renderPage(w, r, "Administration des matchs", page)
}

// GET /matches/{id}
func HandleMatchSheet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	matchID, err := apiutil.IDFromPath(r, matchIDParam)
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	row, err := database.Queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}

	sheet, err := buildSheet(ctx, database.Queries, authz.UserFromContext(r.Context()), models.MatchFromDB(row))
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to build match sheet")
		http.Error(w, "Failed to load match", http.StatusInternalServerError)
		return
	}

	if apiutil.WantsJSON(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, sheetJSON(sheet)); err != nil {
			logger.Error().Err(err).Msg("Failed to write match sheet response")
		}
		return
	}
	renderPage(w, r, sheet.Match.Category+" – "+sheet.Match.Opponent, matchtempl.SheetView(sheet))
}

// GET /api/v1/matches/{id}/permissions
func HandleMatchPermissions(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	matchID, err := apiutil.IDFromPath(r, matchIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid match ID", Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	row, err := database.Queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err})
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}
	match := models.MatchFromDB(row)

	roles := designation.AllTableRoles
	if !user.IsAdmin {
		roles = match.EditableRoles(user.Teams)
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, permissionsResponse{
		MatchID:     match.ID,
		Roles:       roles,
		Slots:       authz.EditableSlots(user, match),
		ClubReferee: match.ClubReferee,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write permissions response")
	}
}

// PATCH /api/v1/matches/{id}/officials
func HandleOfficialsUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	matchID, err := apiutil.IDFromPath(r, matchIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid match ID", Err: err})
		return
	}

	values, err := decodeOfficialsRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var updated models.Match
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		var txErr error
		updated, txErr = models.UpdateOfficials(ctx, tx.Queries, models.UpdateOfficialsParams{
			MatchID: matchID,
			Values:  values,
			Authorize: func(match models.Match, slots []models.Slot) error {
				return authz.AuthorizeSlotUpdate(user, match, slots)
			},
		})
		return txErr
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMatchNotFound):
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err})
		case errors.Is(err, authz.ErrForbidden):
			logger.Warn().Int64("user_id", user.ID).Int64("match_id", matchID).Err(err).Msg("Officials update rejected")
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusForbidden, Message: forbiddenMessage(err), Err: err})
		default:
			logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to update officials")
			http.Error(w, "Failed to update officials", http.StatusInternalServerError)
		}
		return
	}

	logger.Info().Int64("user_id", user.ID).Int64("match_id", matchID).Int("slots", len(values)).Msg("Officials updated")

	if htmx.IsRequest(r) {
		sheet, err := buildSheet(ctx, database.Queries, user, updated)
		if err != nil {
			logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to rebuild match sheet")
			http.Error(w, "Failed to render match", http.StatusInternalServerError)
			return
		}
		apiutil.RenderHTMLComponent(r.Context(), w, matchtempl.SheetView(sheet), nil, "Failed to render match sheet", "Failed to render match")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Msg("Failed to write officials response")
	}
}

// GET /api/v1/roster/options
func HandleRosterOptions(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	club, err := models.LoadClub(ctx, database.Queries)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load roster")
		http.Error(w, "Failed to load roster", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"options": roster.Options(user.DisplayName, user.Teams, club.Roster),
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write roster options response")
	}
}

func buildSheet(ctx context.Context, q *dbgen.Queries, user *authz.AuthUser, match models.Match) (matchtempl.Sheet, error) {
	club, err := models.LoadClub(ctx, q)
	if err != nil {
		return matchtempl.Sheet{}, err
	}

	codec := designation.NewCodec(club.TeamNames())
	sheet := matchtempl.NewSheet(match, codec, club.Roster, authz.EditableSlots(user, match))
	sheet.HomeTeam = club.Team(match.Category)
	sheet.Colors = layouts.NewTeamColors(club.Teams)
	if user != nil && sheet.CanEdit() {
		sheet.Options = roster.Options(user.DisplayName, user.Teams, club.Roster)
	}
	return sheet, nil
}

type slotJSON struct {
	Slot     models.Slot   `json:"slot"`
	Label    string        `json:"label"`
	Value    string        `json:"value"`
	Editable bool          `json:"editable"`
	Identity *roster.Entry `json:"identity,omitempty"`
}

func sheetJSON(sheet matchtempl.Sheet) map[string]any {
	slots := make([]slotJSON, 0, len(sheet.Slots))
	for _, slot := range sheet.Slots {
		if slot.Hidden {
			continue
		}
		slots = append(slots, slotJSON{
			Slot:     slot.Slot,
			Label:    slot.Label,
			Value:    slot.Value,
			Editable: slot.Editable,
			Identity: slot.Identity,
		})
	}
	return map[string]any{
		"match":       sheet.Match,
		"assignments": sheet.Assignments,
		"slots":       slots,
	}
}

// decodeOfficialsRequest accepts a JSON object or a form keyed by slot name.
func decodeOfficialsRequest(r *http.Request) (map[models.Slot]string, error) {
	raw := make(map[string]string)
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &raw); err != nil {
			return nil, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid JSON body", Err: err}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form body", Err: err}
		}
		for key := range r.PostForm {
			raw[key] = r.PostForm.Get(key)
		}
	}

	if len(raw) == 0 {
		return nil, apiutil.FieldError{Field: "officials", Reason: "must name at least one slot"}
	}
	values := make(map[models.Slot]string, len(raw))
	for key, value := range raw {
		slot, ok := models.ParseSlot(key)
		if !ok {
			return nil, apiutil.FieldError{Field: key, Reason: "is not a role slot"}
		}
		values[slot] = value
	}
	return values, nil
}

func forbiddenMessage(err error) string {
	message := strings.TrimPrefix(err.Error(), authz.ErrForbidden.Error()+": ")
	if message == "" {
		return "Forbidden"
	}
	return message
}

func renderPage(w http.ResponseWriter, r *http.Request, title string, content templ.Component) {
	component := content
	if !htmx.IsRequest(r) {
		component = layouts.Base(layouts.Page{Title: title, User: authz.UserFromContext(r.Context())}, content)
	}
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render page", "Failed to render page")
}

func loadDB() *appdb.DB {
	return store
}
