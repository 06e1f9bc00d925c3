package matches

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/clubtable/internal/api/authz"
	"github.com/codr1/clubtable/internal/config"
	appdb "github.com/codr1/clubtable/internal/db"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/testutil"
)

type matchesTestContext struct {
	db    *appdb.DB
	match dbgen.Match
	coach *authz.AuthUser
	admin *authz.AuthUser
}

func setupMatchesTest(t *testing.T, clubReferee bool) matchesTestContext {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevStore, prevConfig, prevNow := store, appConfig, now
	t.Cleanup(func() {
		store, appConfig, now = prevStore, prevConfig, prevNow
	})

	cfg, err := config.Parse([]byte("app:\n  name: test\n  port: 8080\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	InitHandlers(database, cfg)
	now = func() time.Time { return time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC) }

	home := testutil.CreateTeam(t, database, "U15 Filles")
	visitor := testutil.CreateTeam(t, database, "Seniors Gars")
	testutil.CreateMember(t, database, "Martin", "Léa", home.ID)
	testutil.CreateMember(t, database, "Durand", "Paul", visitor.ID)

	match := testutil.CreateMatch(t, database, dbgen.CreateMatchParams{
		Category:    home.Name,
		Opponent:    "Rennes",
		ClubReferee: clubReferee,
		Designation: designation.Encode([]designation.Assignment{
			{Team: visitor.Name, Roles: designation.NewRoleSet(designation.RoleScorer)},
		}),
	})

	return matchesTestContext{
		db:    database,
		match: match,
		coach: &authz.AuthUser{ID: 2, Email: "coach@example.com", DisplayName: "Coach Seniors", Teams: []string{visitor.Name}},
		admin: &authz.AuthUser{ID: 1, Email: "admin@example.com", DisplayName: "Admin", IsAdmin: true},
	}
}

func withUser(req *http.Request, user *authz.AuthUser) *http.Request {
	return req.WithContext(authz.ContextWithUser(req.Context(), user))
}

func patchOfficials(t *testing.T, matchID int64, user *authz.AuthUser, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/matches/%d/officials", matchID), strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", fmt.Sprint(matchID))
	recorder := httptest.NewRecorder()
	HandleOfficialsUpdate(recorder, withUser(req, user))
	return recorder
}

func storedMatch(t *testing.T, database *appdb.DB, id int64) models.Match {
	t.Helper()

	row, err := database.Queries.GetMatch(context.Background(), id)
	if err != nil {
		t.Fatalf("get match %d: %v", id, err)
	}
	return models.MatchFromDB(row)
}

func TestOfficialsUpdateDesignatedSlot(t *testing.T) {
	tc := setupMatchesTest(t, false)

	recorder := patchOfficials(t, tc.match.ID, tc.coach, url.Values{"scorer": {"Durand Paul"}})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	if got := storedMatch(t, tc.db, tc.match.ID).Scorer; got != "Durand Paul" {
		t.Fatalf("expected scorer to be stored, got %q", got)
	}
}

func TestOfficialsUpdateRejectsUndesignatedSlot(t *testing.T) {
	tc := setupMatchesTest(t, false)

	recorder := patchOfficials(t, tc.match.ID, tc.coach, url.Values{
		"scorer":     {"Durand Paul"},
		"timekeeper": {"Durand Paul"},
	})
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), designation.LabelTimekeeper) {
		t.Fatalf("expected refusal to name the slot, got %q", recorder.Body.String())
	}

	stored := storedMatch(t, tc.db, tc.match.ID)
	if stored.Scorer != "" || stored.Timekeeper != "" {
		t.Fatalf("expected no slot written, got scorer=%q timekeeper=%q", stored.Scorer, stored.Timekeeper)
	}
}

func TestOfficialsUpdateRefereeRequiresClubReferee(t *testing.T) {
	tests := []struct {
		name        string
		clubReferee bool
		wantStatus  int
	}{
		{name: "external referees", clubReferee: false, wantStatus: http.StatusForbidden},
		{name: "club referees", clubReferee: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := setupMatchesTest(t, tt.clubReferee)

			recorder := patchOfficials(t, tc.match.ID, tc.coach, url.Values{"referee1": {"Martin Léa"}})
			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, recorder.Code, recorder.Body.String())
			}
		})
	}
}

func TestOfficialsUpdateAdminBypassesDesignation(t *testing.T) {
	tc := setupMatchesTest(t, false)

	recorder := patchOfficials(t, tc.match.ID, tc.admin, url.Values{
		"bar_manager": {"Martin Léa"},
		"referee2":    {"Durand Paul"},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	stored := storedMatch(t, tc.db, tc.match.ID)
	if stored.BarManager != "Martin Léa" || stored.Referee2 != "Durand Paul" {
		t.Fatalf("unexpected stored slots: %+v", stored)
	}
}

func TestOfficialsUpdateUnknownSlot(t *testing.T) {
	tc := setupMatchesTest(t, false)

	recorder := patchOfficials(t, tc.match.ID, tc.admin, url.Values{"coach": {"Martin Léa"}})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", recorder.Code)
	}
}

func TestOfficialsUpdateMissingMatch(t *testing.T) {
	tc := setupMatchesTest(t, false)

	recorder := patchOfficials(t, tc.match.ID+100, tc.admin, url.Values{"scorer": {"Martin Léa"}})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", recorder.Code)
	}
}

func TestOfficialsUpdateAnonymous(t *testing.T) {
	tc := setupMatchesTest(t, false)

	recorder := patchOfficials(t, tc.match.ID, nil, url.Values{"scorer": {"Martin Léa"}})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", recorder.Code)
	}
}

func TestOfficialsUpdateHTMXRendersSheet(t *testing.T) {
	tc := setupMatchesTest(t, false)

	values := url.Values{"scorer": {"Durand Paul"}}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/matches/x/officials", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", fmt.Sprint(tc.match.ID))
	recorder := httptest.NewRecorder()
	HandleOfficialsUpdate(recorder, withUser(req, tc.coach))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := recorder.Body.String()
	if !strings.Contains(body, `id="match-sheet"`) {
		t.Fatalf("expected match sheet partial, got %q", body)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("expected partial without layout")
	}
}

func TestMatchPermissions(t *testing.T) {
	tc := setupMatchesTest(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches/x/permissions", nil)
	req.SetPathValue("id", fmt.Sprint(tc.match.ID))
	recorder := httptest.NewRecorder()
	HandleMatchPermissions(recorder, withUser(req, tc.coach))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	var resp permissionsResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Roles != designation.NewRoleSet(designation.RoleScorer) {
		t.Fatalf("expected scorer grant, got %v", resp.Roles)
	}
	want := []models.Slot{models.SlotScorer, models.SlotReferee1, models.SlotReferee2}
	if fmt.Sprint(resp.Slots) != fmt.Sprint(want) {
		t.Fatalf("expected slots %v, got %v", want, resp.Slots)
	}
}

func TestMatchCreateDefaults(t *testing.T) {
	tc := setupMatchesTest(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", nil)
	recorder := httptest.NewRecorder()
	HandleMatchCreate(recorder, withUser(req, tc.admin))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var created models.Match
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Date != "2026-10-17" || created.Time != "14:00" || created.MeetingTime != "13:30" {
		t.Fatalf("unexpected defaults: %+v", created)
	}
}

func TestMatchCreateRequiresAdmin(t *testing.T) {
	tc := setupMatchesTest(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", nil)
	recorder := httptest.NewRecorder()
	HandleMatchCreate(recorder, withUser(req, tc.coach))

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", recorder.Code)
	}
}

func TestMatchUpdateEncodesAssignments(t *testing.T) {
	tc := setupMatchesTest(t, false)

	body := `{"time":"16:00","assignments":[{"team":"Seniors Gars","roles":["scorer"]},{"team":"Seniors Gars","roles":["bar_manager"]}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/matches/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", fmt.Sprint(tc.match.ID))
	recorder := httptest.NewRecorder()
	HandleMatchUpdate(recorder, withUser(req, tc.admin))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	stored := storedMatch(t, tc.db, tc.match.ID)
	if want := "Seniors Gars {Marqueur, Buvette}"; stored.Designation != want {
		t.Fatalf("expected designation %q, got %q", want, stored.Designation)
	}
	if stored.Time != "16:00" || stored.MeetingTime != "15:30" {
		t.Fatalf("expected meeting time to follow kick-off, got %s / %s", stored.Time, stored.MeetingTime)
	}
}

func TestMatchUpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad date", body: `{"date":"17/10/2026"}`},
		{name: "bad time", body: `{"time":"4pm"}`},
		{name: "blank assignment team", body: `{"assignments":[{"team":" ","roles":["scorer"]}]}`},
		{name: "unknown field", body: `{"venue":"Gymnase"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := setupMatchesTest(t, false)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/matches/x", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("id", fmt.Sprint(tc.match.ID))
			recorder := httptest.NewRecorder()
			HandleMatchUpdate(recorder, withUser(req, tc.admin))

			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", recorder.Code)
			}
		})
	}
}

func TestMatchDelete(t *testing.T) {
	tc := setupMatchesTest(t, false)

	for _, want := range []int{http.StatusOK, http.StatusNotFound} {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/matches/x", nil)
		req.SetPathValue("id", fmt.Sprint(tc.match.ID))
		recorder := httptest.NewRecorder()
		HandleMatchDelete(recorder, withUser(req, tc.admin))
		if recorder.Code != want {
			t.Fatalf("expected status %d, got %d", want, recorder.Code)
		}
	}
}

func TestMatchSheetJSONHidesReferees(t *testing.T) {
	tc := setupMatchesTest(t, false)

	req := httptest.NewRequest(http.MethodGet, "/matches/x?format=json", nil)
	req.SetPathValue("id", fmt.Sprint(tc.match.ID))
	recorder := httptest.NewRecorder()
	HandleMatchSheet(recorder, withUser(req, tc.coach))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	var resp struct {
		Slots []slotJSON `json:"slots"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Slots) != 4 {
		t.Fatalf("expected four table slots, got %d", len(resp.Slots))
	}
	for _, slot := range resp.Slots {
		if slot.Slot.IsReferee() {
			t.Fatalf("expected referee slots hidden, got %s", slot.Slot)
		}
		if slot.Editable != (slot.Slot == models.SlotScorer) {
			t.Fatalf("unexpected editable flag on %s", slot.Slot)
		}
	}
}

func TestMatchesPageRendersLayout(t *testing.T) {
	tc := setupMatchesTest(t, false)

	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	recorder := httptest.NewRecorder()
	HandleMatchesPage(recorder, withUser(req, tc.coach))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "<html") || !strings.Contains(body, "Rennes") {
		t.Fatalf("expected full page listing the match, got %q", body)
	}
}

func TestRosterOptions(t *testing.T) {
	tc := setupMatchesTest(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roster/options", nil)
	recorder := httptest.NewRecorder()
	HandleRosterOptions(recorder, withUser(req, tc.coach))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	var resp struct {
		Options []string `json:"options"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Options) == 0 {
		t.Fatalf("expected roster options")
	}
}
