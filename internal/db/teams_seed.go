package db

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/codr1/clubtable/assets"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/models"
)

const teamSeedBlock = 3

// ParseTeamsFile reads the embedded assets/teams seed file and returns teams in order.
func ParseTeamsFile() ([]models.Team, error) {
	file, err := assets.TeamsFS.Open(assets.TeamsPath)
	if err != nil {
		return nil, fmt.Errorf("open embedded teams file: %w", err)
	}
	defer file.Close()

	return ParseTeams(file)
}

// ParseTeams reads blocks of name, primary colour, alternate colour.
func ParseTeams(r io.Reader) ([]models.Team, error) {
	lines, err := readNonEmptyLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines)%teamSeedBlock != 0 {
		return nil, fmt.Errorf("teams file has %d non-empty lines, expected multiples of %d", len(lines), teamSeedBlock)
	}

	teams := make([]models.Team, 0, len(lines)/teamSeedBlock)
	seen := make(map[string]struct{}, len(lines)/teamSeedBlock)
	for i := 0; i < len(lines); i += teamSeedBlock {
		team := models.Team{
			Name:           lines[i],
			PrimaryColor:   lines[i+1],
			AlternateColor: lines[i+2],
		}
		if err := team.Validate(); err != nil {
			return nil, fmt.Errorf("invalid team %q at line %d: %w", team.Name, i+1, err)
		}
		if _, ok := seen[team.Name]; ok {
			return nil, fmt.Errorf("duplicate team %q at line %d", team.Name, i+1)
		}
		seen[team.Name] = struct{}{}
		teams = append(teams, team)
	}
	return teams, nil
}

// SeedTeams inserts the embedded teams when the teams table is empty. It returns the
// number of teams created.
func (db *DB) SeedTeams(ctx context.Context) (int, error) {
	teams, err := ParseTeamsFile()
	if err != nil {
		return 0, err
	}

	created := 0
	err = db.RunInTx(ctx, func(tx *DB) error {
		count, err := tx.Queries.CountTeams(ctx)
		if err != nil {
			return fmt.Errorf("count teams: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, team := range teams {
			if _, err := tx.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{
				Name:           team.Name,
				PrimaryColor:   team.PrimaryColor,
				AlternateColor: team.AlternateColor,
				ImageUrl:       sql.NullString{},
			}); err != nil {
				return fmt.Errorf("create team %q: %w", team.Name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func readNonEmptyLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	lines := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read teams file: %w", err)
	}
	return lines, nil
}
