// internal/api/members/handlers.go
package members

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/apiutil"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/request"
)

const memberQueryTimeout = 5 * time.Second

var queries *dbgen.Queries

type memberRequest struct {
	LastName  string  `json:"lastName"`
	FirstName string  `json:"firstName"`
	TeamID    *int64  `json:"teamId"`
	TeamName  *string `json:"teamName"`
	ImageURL  *string `json:"imageUrl"`
	IsCoach   bool    `json:"isCoach"`
	Phone     string  `json:"phone"`
}

func InitHandlers(q *dbgen.Queries) {
	queries = q
}

// GET /api/v1/members?team=
func HandleMembersList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), memberQueryTimeout)
	defer cancel()

	rows, err := queries.ListMembers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list members")
		http.Error(w, "Failed to load members", http.StatusInternalServerError)
		return
	}

	members := models.MembersFromDB(rows)
	if team := request.QueryValue(r, "team"); team != "" {
		filtered := members[:0]
		for _, member := range members {
			if member.TeamName != nil && *member.TeamName == team {
				filtered = append(filtered, member)
			}
		}
		members = filtered
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"members": members}); err != nil {
		logger.Error().Err(err).Msg("Failed to write members list response")
	}
}

// POST /api/v1/members
func HandleMemberCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeMemberRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	member := models.Member{
		LastName:  strings.TrimSpace(req.LastName),
		FirstName: strings.TrimSpace(req.FirstName),
		IsCoach:   req.IsCoach,
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := member.Validate(); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}
	if member.Phone != "" {
		normalized, err := models.NormalizePhone(member.Phone)
		if err != nil {
			apiutil.WriteError(w, r, apiutil.FieldError{Field: "phone", Reason: "must be a valid phone number"})
			return
		}
		member.Phone = normalized
	}

	ctx, cancel := context.WithTimeout(r.Context(), memberQueryTimeout)
	defer cancel()

	teamID := req.TeamID
	if teamID == nil && req.TeamName != nil && strings.TrimSpace(*req.TeamName) != "" {
		team, err := queries.GetTeamByName(ctx, strings.TrimSpace(*req.TeamName))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Team not found", Err: err})
				return
			}
			logger.Error().Err(err).Msg("Failed to look up team")
			http.Error(w, "Failed to create member", http.StatusInternalServerError)
			return
		}
		teamID = &team.ID
	}

	phone := member.Phone
	created, err := queries.CreateMember(ctx, dbgen.CreateMemberParams{
		LastName:  member.LastName,
		FirstName: member.FirstName,
		TeamID:    apiutil.ToNullInt64(teamID),
		ImageUrl:  apiutil.ToNullString(req.ImageURL),
		IsCoach:   member.IsCoach,
		Phone:     apiutil.ToNullString(&phone),
	})
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Team not found", Err: err})
			return
		}
		logger.Error().Err(err).Msg("Failed to create member")
		http.Error(w, "Failed to create member", http.StatusInternalServerError)
		return
	}

	member.ID = created.ID
	member.TeamID = teamID
	member.ImageURL = req.ImageURL
	member.CreatedAt = created.CreatedAt
	logger.Info().Int64("member_id", created.ID).Msg("Member created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, member); err != nil {
		logger.Error().Err(err).Int64("member_id", created.ID).Msg("Failed to write member response")
	}
}

func decodeMemberRequest(r *http.Request) (memberRequest, error) {
	var req memberRequest
	if apiutil.IsJSONRequest(r) {
		err := apiutil.DecodeJSON(r, &req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.LastName = r.FormValue("lastName")
	req.FirstName = r.FormValue("firstName")
	req.IsCoach = apiutil.ParseBoolField(r.FormValue("isCoach"))
	req.Phone = r.FormValue("phone")
	if raw := strings.TrimSpace(r.FormValue("teamId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return req, apiutil.FieldError{Field: "teamId", Reason: "must be a positive integer"}
		}
		req.TeamID = &id
	}
	if name := strings.TrimSpace(r.FormValue("teamName")); name != "" {
		req.TeamName = &name
	}
	if imageURL := strings.TrimSpace(r.FormValue("imageUrl")); imageURL != "" {
		req.ImageURL = &imageURL
	}
	return req, nil
}
