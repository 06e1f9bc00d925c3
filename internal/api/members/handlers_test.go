package members

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/testutil"
)

func setupMembersTest(t *testing.T) int64 {
	t.Helper()

	database := testutil.NewTestDB(t)
	prev := queries
	t.Cleanup(func() { queries = prev })
	InitHandlers(database.Queries)

	team := testutil.CreateTeam(t, database, "U17 Garçons")
	testutil.CreateMember(t, database, "Martin", "Léa", team.ID)
	testutil.CreateMember(t, database, "Bernard", "Hugo", 0)
	return team.ID
}

func postMember(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/members", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	HandleMemberCreate(recorder, req)
	return recorder
}

func TestHandleMemberCreateNormalizesPhone(t *testing.T) {
	setupMembersTest(t)

	recorder := postMember(`{"lastName":"Durand","firstName":"Paul","teamName":"U17 Garçons","phone":"06 12 34 56 78","isCoach":true}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var created models.Member
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Phone != "+33612345678" {
		t.Fatalf("expected E.164 phone, got %q", created.Phone)
	}
	if created.TeamID == nil || !created.IsCoach {
		t.Fatalf("unexpected member: %+v", created)
	}
}

func TestHandleMemberCreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "no name", body: `{"phone":"0612345678"}`, wantStatus: http.StatusBadRequest},
		{name: "bad phone", body: `{"lastName":"Durand","phone":"not a phone"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown team name", body: `{"lastName":"Durand","teamName":"Vétérans"}`, wantStatus: http.StatusNotFound},
		{name: "unknown team id", body: `{"lastName":"Durand","teamId":999}`, wantStatus: http.StatusNotFound},
		{name: "no team", body: `{"lastName":"Durand"}`, wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupMembersTest(t)

			recorder := postMember(tt.body)
			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, recorder.Code, recorder.Body.String())
			}
		})
	}
}

func TestHandleMembersListFiltersByTeam(t *testing.T) {
	setupMembersTest(t)

	for _, tc := range []struct {
		query string
		want  int
	}{
		{query: "", want: 2},
		{query: "?team=U17+Gar%C3%A7ons", want: 1},
		{query: "?team=Seniors", want: 0},
	} {
		recorder := httptest.NewRecorder()
		HandleMembersList(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/members"+tc.query, nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		var resp struct {
			Members []models.Member `json:"members"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Members) != tc.want {
			t.Fatalf("query %q: expected %d members, got %d", tc.query, tc.want, len(resp.Members))
		}
	}
}
