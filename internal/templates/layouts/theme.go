package layouts

import (
	"fmt"
	"html"
	"strings"

	"github.com/codr1/clubtable/internal/models"
)

const defaultBadgeColor = "#6b7280"

// TeamColors maps team names to their primary jersey colour.
type TeamColors map[string]string

func NewTeamColors(teams []models.Team) TeamColors {
	colors := make(TeamColors, len(teams))
	for _, team := range teams {
		colors[team.Name] = team.PrimaryColor
	}
	return colors
}

// BadgeStyle is an inline style for a team badge with readable text.
func (c TeamColors) BadgeStyle(team string) string {
	return badgeStyle(colorOrDefault(c[strings.TrimSpace(team)], defaultBadgeColor))
}

// TeamBadge renders a small coloured pill with the team name. Blank teams render nothing.
func (c TeamColors) TeamBadge(team string) string {
	team = strings.TrimSpace(team)
	if team == "" {
		return ""
	}
	return fmt.Sprintf(
		`<span class="inline-block rounded-full px-2 py-0.5 text-xs font-medium" style="%s">%s</span>`,
		html.EscapeString(c.BadgeStyle(team)),
		html.EscapeString(team),
	)
}

// JerseyBadge shows the colour the home team plays in for a match.
func JerseyBadge(team models.Team, alternate bool) string {
	label := "Maillot principal"
	if alternate {
		label = "Maillot extérieur"
	}
	color := colorOrDefault(team.JerseyColor(alternate), defaultBadgeColor)
	return fmt.Sprintf(
		`<span class="inline-block rounded px-2 py-0.5 text-xs" style="%s">%s</span>`,
		html.EscapeString(badgeStyle(color)),
		label,
	)
}

func badgeStyle(background string) string {
	return fmt.Sprintf("background-color:%s;color:%s", background, models.BadgeTextColor(background))
}

func colorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if !models.IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
