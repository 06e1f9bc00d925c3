package stats

import (
	"context"
	"fmt"

	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/models"
)

// Queries is what Load reads the match history and the club from.
type Queries interface {
	models.ClubQueries
	ListMatches(ctx context.Context) ([]dbgen.Match, error)
}

// Load recomputes the leaderboard from storage. A nil scope credits everyone.
func Load(ctx context.Context, q Queries, scope Scope) ([]Entry, models.Club, error) {
	club, err := models.LoadClub(ctx, q)
	if err != nil {
		return nil, models.Club{}, err
	}
	rows, err := q.ListMatches(ctx)
	if err != nil {
		return nil, models.Club{}, fmt.Errorf("list matches: %w", err)
	}

	entries := Build(models.MatchesFromDB(rows), club.Roster, Options{
		Scope:      scope,
		KnownTeams: club.TeamNames(),
	})
	return entries, club, nil
}

// PaletteFor colours chart bars with each team's primary jersey colour.
func PaletteFor(teams []models.Team) ChartPalette {
	palette := DefaultChartPalette()
	palette.TeamColors = make(map[string]string, len(teams))
	for _, team := range teams {
		palette.TeamColors[team.Name] = team.PrimaryColor
	}
	return palette
}
