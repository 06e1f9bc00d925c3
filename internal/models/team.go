// internal/models/team.go
package models

import (
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	dbgen "github.com/codr1/clubtable/internal/db/generated"
)

// Jersey colours back badges with short bold text, so the AA large-text threshold applies.
const wcagAAMinContrastRatio = 3.0
const wcagAAContrastNote = "WCAG AA for large text/UI components"
const maxTeamNameLength = 60
const darkTextColor = "#000000"
const lightTextColor = "#FFFFFF"
const defaultPrimaryColor = "#1f2937"
const defaultAlternateColor = "#e5e7eb"

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

type Team struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	PrimaryColor   string    `json:"primaryColor"`
	AlternateColor string    `json:"alternateColor"`
	ImageURL       *string   `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewTeam fills in the default jersey colours for blank ones.
func NewTeam(name, primary, alternate string) Team {
	team := Team{
		Name:           strings.TrimSpace(name),
		PrimaryColor:   strings.TrimSpace(primary),
		AlternateColor: strings.TrimSpace(alternate),
	}
	if team.PrimaryColor == "" {
		team.PrimaryColor = defaultPrimaryColor
	}
	if team.AlternateColor == "" {
		team.AlternateColor = defaultAlternateColor
	}
	return team
}

func (t Team) Validate() error {
	trimmedName := strings.TrimSpace(t.Name)
	if trimmedName == "" {
		return fmt.Errorf("name is required")
	}
	if trimmedName != t.Name {
		return fmt.Errorf("name must not have leading or trailing whitespace")
	}
	if len(trimmedName) > maxTeamNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxTeamNameLength)
	}
	// Team names are embedded in designation text, where these characters are syntax.
	if strings.ContainsAny(trimmedName, "{}+") {
		return fmt.Errorf("name must not contain '{', '}' or '+'")
	}

	colorFields := []struct {
		name  string
		value string
	}{
		{"primary_color", t.PrimaryColor},
		{"alternate_color", t.AlternateColor},
	}
	for _, field := range colorFields {
		if !hexColorRegex.MatchString(field.value) {
			return fmt.Errorf("%s must be a 6-digit hex color like #AABBCC", field.name)
		}
		if err := validateTextContrast(field.name, field.value); err != nil {
			return err
		}
	}

	return nil
}

// JerseyColor is the colour the team plays in for a match.
func (t Team) JerseyColor(alternate bool) string {
	if alternate {
		return t.AlternateColor
	}
	return t.PrimaryColor
}

// BadgeTextColor picks black or white, whichever reads better on background.
// Invalid colours fall back to white.
func BadgeTextColor(background string) string {
	dark, err := contrastRatio(darkTextColor, background)
	if err != nil {
		return lightTextColor
	}
	light, err := contrastRatio(lightTextColor, background)
	if err != nil {
		return lightTextColor
	}
	if dark > light {
		return darkTextColor
	}
	return lightTextColor
}

func TeamFromDB(row dbgen.Team) Team {
	return Team{
		ID:             row.ID,
		Name:           row.Name,
		PrimaryColor:   row.PrimaryColor,
		AlternateColor: row.AlternateColor,
		ImageURL:       nullStringPtr(row.ImageUrl),
		CreatedAt:      row.CreatedAt,
	}
}

func TeamsFromDB(rows []dbgen.Team) []Team {
	results := make([]Team, 0, len(rows))
	for _, row := range rows {
		results = append(results, TeamFromDB(row))
	}
	return results
}

// TeamNames returns the names in the order given.
func TeamNames(teams []Team) []string {
	names := make([]string, 0, len(teams))
	for _, team := range teams {
		names = append(names, team.Name)
	}
	return names
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return nil
	}
	v := value.String
	return &v
}

func validateTextContrast(colorName, backgroundColor string) error {
	textColors := []string{darkTextColor, lightTextColor}
	bestRatio := 0.0
	bestText := ""
	for _, textColor := range textColors {
		ratio, err := contrastRatio(textColor, backgroundColor)
		if err != nil {
			return err
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestText = textColor
		}
	}
	if bestRatio < wcagAAMinContrastRatio {
		return fmt.Errorf(
			"%s must have contrast ratio >= %.1f with #000000 or #FFFFFF text (%s); best is %s at %.2f",
			colorName,
			wcagAAMinContrastRatio,
			wcagAAContrastNote,
			bestText,
			bestRatio,
		)
	}
	return nil
}

func contrastRatio(textColor, backgroundColor string) (float64, error) {
	textL, err := relativeLuminance(textColor)
	if err != nil {
		return 0, err
	}
	backgroundL, err := relativeLuminance(backgroundColor)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	r, g, b, err := ParseHexColor(hexColor)
	if err != nil {
		return 0, err
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b), nil
}

// ParseHexColor returns the channels of a #RRGGBB colour scaled to [0, 1].
func ParseHexColor(hexColor string) (float64, float64, float64, error) {
	hexColor = strings.TrimSpace(hexColor)
	if !hexColorRegex.MatchString(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	value, err := strconv.ParseUint(strings.TrimPrefix(hexColor, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	r := float64((value >> 16) & 0xFF)
	g := float64((value >> 8) & 0xFF)
	b := float64(value & 0xFF)

	return r / 255, g / 255, b / 255, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
