package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/clubtable/internal/config"
	"github.com/codr1/clubtable/internal/ratelimit"
	"github.com/codr1/clubtable/internal/testutil"
)

type authTestContext struct {
	teamID  int64
	userID  int64
	limiter *ratelimit.Limiter
}

func setupAuthTest(t *testing.T) authTestContext {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevConfig, prevQueries, prevLimiter := appConfig, queries, limiter
	t.Cleanup(func() {
		appConfig, queries, limiter = prevConfig, prevQueries, prevLimiter
	})

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.App.SecretKey = "test-secret-key"

	l := ratelimit.New(&ratelimit.Config{MaxFailures: 2, Lockout: time.Minute, MaxIPPerHour: 100})
	t.Cleanup(l.Close)

	InitHandlers(database.Queries, cfg, l)

	team := testutil.CreateTeam(t, database, "U13 Garçons")
	user := testutil.CreateUser(t, database, "coach@example.com", "Coach U13", false, team.ID)

	return authTestContext{teamID: team.ID, userID: user.ID, limiter: l}
}

func postLogin(email, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.0.2.10:5000"
	rec := httptest.NewRecorder()
	HandleLogin(rec, req)
	return rec
}

func TestHandleLoginSuccessSetsSession(t *testing.T) {
	tc := setupAuthTest(t)

	rec := postLogin("Coach@Example.com", testutil.TestPassword)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/matches" {
		t.Fatalf("Location = %q, want /matches", got)
	}

	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			session = cookie
		}
	}
	if session == nil {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	req.AddCookie(session)
	user, err := UserFromRequest(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("UserFromRequest() error = %v", err)
	}
	if user == nil || user.ID != tc.userID {
		t.Fatalf("user = %+v, want id %d", user, tc.userID)
	}
	if len(user.Teams) != 1 || user.Teams[0] != "U13 Garçons" {
		t.Fatalf("teams = %v, want [U13 Garçons]", user.Teams)
	}
	if user.IsAdmin {
		t.Fatal("coach should not be an administrator")
	}
}

func TestHandleLoginWrongPassword(t *testing.T) {
	setupAuthTest(t)

	rec := postLogin("coach@example.com", "wrong password")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), invalidCredentialsMessage) {
		t.Fatalf("body should explain the failure, got %s", rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			t.Fatal("failed login must not set a session")
		}
	}
}

func TestHandleLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	setupAuthTest(t)

	rec := postLogin("nobody@example.com", testutil.TestPassword)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLoginLockout(t *testing.T) {
	setupAuthTest(t)

	postLogin("coach@example.com", "wrong 1")
	postLogin("coach@example.com", "wrong 2")

	rec := postLogin("coach@example.com", testutil.TestPassword)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestHandleLoginJSON(t *testing.T) {
	setupAuthTest(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"coach@example.com","password":"`+testutil.TestPassword+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"coach@example.com"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestHandleLoginHTMXRedirect(t *testing.T) {
	setupAuthTest(t)

	form := url.Values{"email": {"coach@example.com"}, "password": {testutil.TestPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	HandleLogin(rec, req)

	if rec.Code != http.StatusOK || rec.Header().Get("HX-Redirect") != "/matches" {
		t.Fatalf("status = %d, HX-Redirect = %q", rec.Code, rec.Header().Get("HX-Redirect"))
	}
}

func TestHandleLogoutClearsCookie(t *testing.T) {
	setupAuthTest(t)

	rec := httptest.NewRecorder()
	HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expired session cookie, got %+v", cookies)
	}
}

func TestUserFromRequestDeletedUser(t *testing.T) {
	setupAuthTest(t)

	rec := httptest.NewRecorder()
	if err := SetSessionCookie(rec, 9999); err != nil {
		t.Fatalf("SetSessionCookie() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	out := httptest.NewRecorder()
	user, err := UserFromRequest(out, req)
	if err != nil || user != nil {
		t.Fatalf("UserFromRequest() = %+v, %v; want nil, nil", user, err)
	}
	if len(out.Result().Cookies()) != 1 {
		t.Fatal("expected the stale cookie to be cleared")
	}
}
