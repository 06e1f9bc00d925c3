package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/codr1/clubtable/internal/api/authz"
)

const (
	sessionCookieName = "clubtable_session"
	authSessionTTL    = 12 * time.Hour
)

var (
	errAuthConfigMissing = errors.New("auth configuration missing")
	errInvalidSession    = errors.New("invalid session cookie")
	errSessionExpired    = errors.New("session expired")
)

// authSession is the signed cookie payload. Roles and teams are reloaded on every
// request so a revoked coach loses access without waiting for the cookie to expire.
type authSession struct {
	UserID    int64 `json:"user_id"`
	ExpiresAt int64 `json:"exp"`
}

func isSecureCookie() bool {
	return appConfig == nil || !appConfig.IsDevelopment()
}

// SetSessionCookie signs a session for userID and sets it on w.
func SetSessionCookie(w http.ResponseWriter, userID int64) error {
	if w == nil {
		return errors.New("session requires response writer")
	}

	expiresAt := time.Now().Add(authSessionTTL)
	value, err := encodeSession(authSession{UserID: userID, ExpiresAt: expiresAt.Unix()})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(authSessionTTL.Seconds()),
	})
	return nil
}

func ClearSessionCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest returns the signed-in user with their coached teams, or nil when the
// request carries no valid session. A stale or tampered cookie is cleared.
func UserFromRequest(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}

	session, err := parseSessionCookie(r)
	if err != nil {
		if errors.Is(err, errAuthConfigMissing) {
			return nil, err
		}
		ClearSessionCookie(w)
		return nil, nil
	}
	if session == nil {
		return nil, nil
	}

	if queries == nil {
		return nil, errors.New("auth queries not initialized")
	}

	user, err := queries.GetUserByID(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ClearSessionCookie(w)
			return nil, nil
		}
		return nil, err
	}

	teams, err := queries.ListUserTeamNames(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}

	return &authz.AuthUser{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     user.IsAdmin,
		Teams:       teams,
	}, nil
}

func encodeSession(session authSession) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encodedPayload)
	if err != nil {
		return "", err
	}
	return encodedPayload + "." + signature, nil
}

func parseSessionCookie(r *http.Request) (*authSession, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	encodedPayload, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok {
		return nil, errInvalidSession
	}

	expectedSignature, err := signPayload(encodedPayload)
	if err != nil {
		return nil, err
	}
	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, errInvalidSession
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, errInvalidSession
	}

	var session authSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, errInvalidSession
	}
	if session.UserID <= 0 {
		return nil, errInvalidSession
	}
	if session.ExpiresAt <= time.Now().Unix() {
		return nil, errSessionExpired
	}

	return &session, nil
}

func signPayload(payload string) (string, error) {
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return "", errAuthConfigMissing
	}

	mac := hmac.New(sha256.New, []byte(appConfig.App.SecretKey))
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}
