package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/clubtable/internal/api/authz"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// IsJSONRequest reports whether the request body is JSON.
func IsJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// WantsJSON reports whether the client asked for a JSON response.
func WantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// WriteError writes err as JSON or plain text depending on the request. HandlerError
// and FieldError carry their own status; anything else is a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var handlerErr HandlerError
	var fieldErr FieldError
	switch {
	case errors.As(err, &handlerErr):
		status = handlerErr.Status
		message = handlerErr.Message
	case errors.As(err, &fieldErr):
		status = http.StatusBadRequest
		message = fieldErr.Error()
	}
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("Request failed")
	}

	if WantsJSON(r) || IsJSONRequest(r) {
		if writeErr := WriteJSON(w, status, map[string]string{"error": message}); writeErr != nil {
			logger.Error().Err(writeErr).Msg("Failed to write error response")
		}
		return
	}
	http.Error(w, message, status)
}

// RenderHTMLComponent buffers component so a render failure still yields a clean 500.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMsg string, errMsg string) bool {
	logger := log.Ctx(ctx)
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		logger.Error().Err(err).Msg(logMsg)
		http.Error(w, errMsg, http.StatusInternalServerError)
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
	return true
}

// RequireUser writes 401 and returns nil when the request is anonymous.
func RequireUser(w http.ResponseWriter, r *http.Request) *authz.AuthUser {
	user, err := authz.RequireUser(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("Access denied: unauthenticated")
		WriteError(w, r, HandlerError{Status: http.StatusUnauthorized, Message: "Unauthorized", Err: err})
		return nil
	}
	return user
}

// RequireAdmin writes 401 or 403 and returns nil unless the viewer is an administrator.
func RequireAdmin(w http.ResponseWriter, r *http.Request) *authz.AuthUser {
	user, err := authz.RequireAdmin(r.Context())
	if err == nil {
		return user
	}

	logger := log.Ctx(r.Context())
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		logger.Warn().Str("path", r.URL.Path).Msg("Admin access denied: unauthenticated")
		WriteError(w, r, HandlerError{Status: http.StatusUnauthorized, Message: "Unauthorized", Err: err})
	default:
		logEvent := logger.Warn().Str("path", r.URL.Path)
		if viewer := authz.UserFromContext(r.Context()); viewer != nil {
			logEvent = logEvent.Int64("user_id", viewer.ID)
		}
		logEvent.Msg("Admin access denied: forbidden")
		WriteError(w, r, HandlerError{Status: http.StatusForbidden, Message: "Forbidden", Err: err})
	}
	return nil
}
