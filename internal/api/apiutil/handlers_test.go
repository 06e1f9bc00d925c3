package apiutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/codr1/clubtable/internal/api/authz"
)

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "handler error",
			err:        HandlerError{Status: http.StatusConflict, Message: "team already exists"},
			wantStatus: http.StatusConflict,
			wantBody:   "team already exists",
		},
		{
			name:       "wrapped field error",
			err:        fmt.Errorf("decode: %w", FieldError{Field: "date", Reason: "is required"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   "date is required",
		},
		{
			name:       "plain error",
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal Server Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
			req.Header.Set("Accept", "application/json")
			recorder := httptest.NewRecorder()

			WriteError(recorder, req, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
			var payload map[string]string
			if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if payload["error"] != tt.wantBody {
				t.Fatalf("expected error %q, got %q", tt.wantBody, payload["error"])
			}
		})
	}
}

func TestWriteErrorPlainText(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/matches/3", nil)
	recorder := httptest.NewRecorder()

	WriteError(recorder, req, HandlerError{Status: http.StatusNotFound, Message: "Match not found"})

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %q", ct)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"U15 Filles"}`},
		{name: "unknown field", body: `{"name":"U15 Filles","colour":"red"}`, wantErr: true},
		{name: "trailing document", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSON(req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWantsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leaderboard?format=json", nil)
	if !WantsJSON(req) {
		t.Fatal("expected format=json to ask for JSON")
	}
	req = httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	req.Header.Set("Accept", "text/html,application/json;q=0.9")
	if !WantsJSON(req) {
		t.Fatal("expected Accept header to ask for JSON")
	}
	req = httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	if WantsJSON(req) {
		t.Fatal("expected plain request to want HTML")
	}
}

func TestRenderHTMLComponentFailure(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, "<div>partial")
		return errors.New("boom")
	})
	recorder := httptest.NewRecorder()

	if RenderHTMLComponent(context.Background(), recorder, failing, nil, "render", "Failed to render") {
		t.Fatal("expected render to report failure")
	}
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "partial") {
		t.Fatal("expected partial output to be discarded")
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *authz.AuthUser
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "coach", user: &authz.AuthUser{ID: 2, Email: "coach@example.com"}, wantStatus: http.StatusForbidden},
		{name: "admin", user: &authz.AuthUser{ID: 1, Email: "admin@example.com", IsAdmin: true}, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/matches", nil)
			if tt.user != nil {
				req = req.WithContext(authz.ContextWithUser(req.Context(), tt.user))
			}
			recorder := httptest.NewRecorder()

			got := RequireAdmin(recorder, req)
			if (got != nil) != (tt.wantStatus == http.StatusOK) {
				t.Fatalf("unexpected user %+v", got)
			}
			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
		})
	}
}
