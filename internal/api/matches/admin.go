package matches

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/apiutil"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/models"
)

// POST /api/v1/matches
func HandleMatchCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil || appConfig == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	admin := apiutil.RequireAdmin(w, r)
	if admin == nil {
		return
	}

	req, err := decodeMatchRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	match, err := models.NewMatch(now(), appConfig.Location(), appConfig.Matches.DefaultTime, appConfig.MeetingOffset())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build match defaults")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := applyMatchRequest(&match, req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	row, err := database.Queries.CreateMatch(ctx, dbgen.CreateMatchParams{
		MatchDate:       match.Date,
		MatchTime:       match.Time,
		MeetingTime:     match.MeetingTime,
		Category:        match.Category,
		Opponent:        match.Opponent,
		AlternateJersey: match.AlternateJersey,
		ClubReferee:     match.ClubReferee,
		Designation:     match.Designation,
		Scorer:          match.Scorer,
		Timekeeper:      match.Timekeeper,
		HallManager:     match.HallManager,
		BarManager:      match.BarManager,
		Referee1:        match.Referee1,
		Referee2:        match.Referee2,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create match")
		http.Error(w, "Failed to create match", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", admin.ID).Int64("match_id", row.ID).Msg("Match created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, models.MatchFromDB(row)); err != nil {
		logger.Error().Err(err).Msg("Failed to write match response")
	}
}

// PUT /api/v1/matches/{id}
func HandleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	admin := apiutil.RequireAdmin(w, r)
	if admin == nil {
		return
	}

	matchID, err := apiutil.IDFromPath(r, matchIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid match ID", Err: err})
		return
	}

	req, err := decodeMatchRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	existing, err := database.Queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err})
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to fetch match")
		http.Error(w, "Failed to fetch match", http.StatusInternalServerError)
		return
	}

	match := models.MatchFromDB(existing)
	if err := applyMatchRequest(&match, req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	row, err := database.Queries.UpdateMatch(ctx, dbgen.UpdateMatchParams{
		MatchDate:       match.Date,
		MatchTime:       match.Time,
		MeetingTime:     match.MeetingTime,
		Category:        match.Category,
		Opponent:        match.Opponent,
		AlternateJersey: match.AlternateJersey,
		ClubReferee:     match.ClubReferee,
		Designation:     match.Designation,
		Scorer:          match.Scorer,
		Timekeeper:      match.Timekeeper,
		HallManager:     match.HallManager,
		BarManager:      match.BarManager,
		Referee1:        match.Referee1,
		Referee2:        match.Referee2,
		ID:              matchID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err})
			return
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to update match")
		http.Error(w, "Failed to update match", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", admin.ID).Int64("match_id", matchID).Msg("Match updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, models.MatchFromDB(row)); err != nil {
		logger.Error().Err(err).Msg("Failed to write match response")
	}
}

// DELETE /api/v1/matches/{id}
func HandleMatchDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	admin := apiutil.RequireAdmin(w, r)
	if admin == nil {
		return
	}

	matchID, err := apiutil.IDFromPath(r, matchIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid match ID", Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	deleted, err := database.Queries.DeleteMatch(ctx, matchID)
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to delete match")
		http.Error(w, "Failed to delete match", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found"})
		return
	}

	logger.Info().Int64("user_id", admin.ID).Int64("match_id", matchID).Msg("Match deleted")
	// htmx swaps the row out on an empty 200.
	w.WriteHeader(http.StatusOK)
}

// decodeMatchRequest reads JSON or form input. An empty body yields a zero request.
func decodeMatchRequest(r *http.Request) (matchRequest, error) {
	var req matchRequest
	if apiutil.IsJSONRequest(r) {
		if r.ContentLength == 0 {
			return req, nil
		}
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return req, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid JSON body", Err: err}
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form body", Err: err}
	}
	form := r.PostForm
	text := func(key string) *string {
		if _, ok := form[key]; !ok {
			return nil
		}
		value := form.Get(key)
		return &value
	}
	flag := func(key string) *bool {
		if _, ok := form[key]; !ok {
			return nil
		}
		value := apiutil.ParseBoolField(form.Get(key))
		return &value
	}
	req.Date = text("date")
	req.Time = text("time")
	req.MeetingTime = text("meetingTime")
	req.Category = text("category")
	req.Opponent = text("opponent")
	req.AlternateJersey = flag("alternateJersey")
	req.ClubReferee = flag("clubReferee")
	req.Designation = text("designation")
	req.Scorer = text(string(models.SlotScorer))
	req.Timekeeper = text(string(models.SlotTimekeeper))
	req.HallManager = text(string(models.SlotHallManager))
	req.BarManager = text(string(models.SlotBarManager))
	req.Referee1 = text(string(models.SlotReferee1))
	req.Referee2 = text(string(models.SlotReferee2))
	return req, nil
}

// applyMatchRequest overlays req on match. A changed kick-off time without an explicit
// meeting time moves the meeting time with it.
func applyMatchRequest(match *models.Match, req matchRequest) error {
	if req.Date != nil {
		date, err := apiutil.ParseDateField(*req.Date, "date")
		if err != nil {
			return err
		}
		match.Date = date
	}

	timeChanged := false
	if req.Time != nil {
		kickOff, err := apiutil.ParseTimeField(*req.Time, "time")
		if err != nil {
			return err
		}
		timeChanged = kickOff != match.Time
		match.Time = kickOff
	}

	switch {
	case req.MeetingTime != nil && strings.TrimSpace(*req.MeetingTime) != "":
		meeting, err := apiutil.ParseTimeField(*req.MeetingTime, "meetingTime")
		if err != nil {
			return err
		}
		match.MeetingTime = meeting
	case req.MeetingTime != nil || timeChanged || match.MeetingTime == "":
		offset := appConfigMeetingOffset()
		meeting, err := models.MeetingTime(match.Time, offset)
		if err != nil {
			return apiutil.FieldError{Field: "time", Reason: "must be a time in HH:MM format"}
		}
		match.MeetingTime = meeting
	}

	if req.Category != nil {
		match.Category = strings.TrimSpace(*req.Category)
	}
	if req.Opponent != nil {
		match.Opponent = strings.TrimSpace(*req.Opponent)
	}
	if req.AlternateJersey != nil {
		match.AlternateJersey = *req.AlternateJersey
	}
	if req.ClubReferee != nil {
		match.ClubReferee = *req.ClubReferee
	}

	switch {
	case len(req.Assignments) > 0:
		for _, assignment := range req.Assignments {
			if strings.TrimSpace(assignment.Team) == "" {
				return apiutil.FieldError{Field: "assignments", Reason: "team is required"}
			}
		}
		match.Designation = designation.Encode(req.Assignments)
	case req.Designation != nil:
		match.Designation = strings.TrimSpace(*req.Designation)
	}

	for slot, value := range map[models.Slot]*string{
		models.SlotScorer:      req.Scorer,
		models.SlotTimekeeper:  req.Timekeeper,
		models.SlotHallManager: req.HallManager,
		models.SlotBarManager:  req.BarManager,
		models.SlotReferee1:    req.Referee1,
		models.SlotReferee2:    req.Referee2,
	} {
		if value != nil {
			match.SetSlotValue(slot, *value)
		}
	}
	return nil
}

func appConfigMeetingOffset() time.Duration {
	if appConfig == nil {
		return 0
	}
	return appConfig.MeetingOffset()
}
