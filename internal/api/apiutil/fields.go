package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codr1/clubtable/internal/models"
)

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// ParseNonNegativeIntField parses an optional non-negative integer. Blank means fallback.
func ParseNonNegativeIntField(raw string, field string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s must be 0 or greater", field)
	}
	return value, nil
}

// IDFromPath reads a positive integer path value such as {id}.
func IDFromPath(r *http.Request, name string) (int64, error) {
	return ParsePositiveInt64Field(r.PathValue(name), name)
}

// ParseDateField validates a YYYY-MM-DD date and returns it normalised.
func ParseDateField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	parsed, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return "", FieldError{Field: field, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return parsed.Format(models.DateLayout), nil
}

// ParseTimeField validates an HH:MM time and returns it normalised.
func ParseTimeField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	parsed, err := time.Parse(models.TimeLayout, raw)
	if err != nil {
		return "", FieldError{Field: field, Reason: "must be a time in HH:MM format"}
	}
	return parsed.Format(models.TimeLayout), nil
}

// ParseBoolField accepts the usual HTML checkbox and JSON-ish spellings.
func ParseBoolField(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
