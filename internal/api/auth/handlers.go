package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/apiutil"
	"github.com/codr1/clubtable/internal/api/htmx"
	"github.com/codr1/clubtable/internal/config"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/ratelimit"
	authtempl "github.com/codr1/clubtable/internal/templates/components/auth"
	"github.com/codr1/clubtable/internal/templates/layouts"
)

const invalidCredentialsMessage = "Email ou mot de passe incorrect"

var (
	queries   *dbgen.Queries
	appConfig *config.Config
	limiter   *ratelimit.Limiter

	dummyHashOnce sync.Once
	dummyHash     string
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, cfg *config.Config, l *ratelimit.Limiter) {
	queries = q
	appConfig = cfg
	limiter = l
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GET /login
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	component := authtempl.LoginForm("", "")
	if !htmx.IsRequest(r) {
		component = layouts.Base(layouts.Page{Title: "Connexion"}, component)
	}
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render login page", "Failed to render page")
}

// POST /login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid JSON body", Err: err})
			return
		}
	} else {
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeLoginFailure(w, r, email, http.StatusBadRequest, "Email et mot de passe requis")
		return
	}

	ip := ratelimit.GetClientIP(r, appConfig != nil && appConfig.App.TrustProxy)
	if limiter != nil {
		if result := limiter.CheckLogin(email, ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded(email, ip, result.Reason)
			w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			writeLoginFailure(w, r, email, http.StatusTooManyRequests, "Trop de tentatives, réessayez plus tard")
			return
		}
	}

	user, err := queries.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to load user for login")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	hash := user.PasswordHash
	if err != nil {
		// Unknown emails still pay for a bcrypt comparison.
		hash = loadDummyHash()
	}
	if !VerifyPassword(hash, req.Password) || err != nil {
		if limiter != nil && limiter.RecordFailedLogin(email, ip) {
			logger.Warn().
				Str("identifier", ratelimit.SanitizeIdentifier(email)).
				Str("ip", ip).
				Msg("Login locked out after repeated failures")
		}
		writeLoginFailure(w, r, email, http.StatusUnauthorized, invalidCredentialsMessage)
		return
	}

	if limiter != nil {
		limiter.ResetLogin(email)
	}
	if err := SetSessionCookie(w, user.ID); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", user.ID).Bool("is_admin", user.IsAdmin).Msg("User logged in")

	switch {
	case apiutil.IsJSONRequest(r):
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
			"id":          user.ID,
			"email":       user.Email,
			"displayName": user.DisplayName,
			"isAdmin":     user.IsAdmin,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to write login response")
		}
	case htmx.IsRequest(r):
		w.Header().Set("HX-Redirect", "/matches")
		w.WriteHeader(http.StatusOK)
	default:
		http.Redirect(w, r, "/matches", http.StatusSeeOther)
	}
}

// POST /logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w)
	if htmx.IsRequest(r) {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func writeLoginFailure(w http.ResponseWriter, r *http.Request, email string, status int, message string) {
	if apiutil.IsJSONRequest(r) {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: status, Message: message})
		return
	}
	component := authtempl.LoginForm(email, message)
	if !htmx.IsRequest(r) {
		component = layouts.Base(layouts.Page{Title: "Connexion"}, component)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// htmx only swaps 2xx responses by default, so the form comes back with 200.
	w.WriteHeader(loginFailureStatus(r, status))
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render login form")
	}
}

func loginFailureStatus(r *http.Request, status int) int {
	if htmx.IsRequest(r) {
		return http.StatusOK
	}
	return status
}

func loadDummyHash() string {
	dummyHashOnce.Do(func() {
		hash, err := HashPassword("not-a-real-password")
		if err == nil {
			dummyHash = hash
		}
	})
	return dummyHash
}
