// internal/models/club.go
package models

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/roster"
)

// ClubQueries loads the reference data every designation screen needs.
type ClubQueries interface {
	ListTeams(ctx context.Context) ([]dbgen.Team, error)
	ListMembers(ctx context.Context) ([]dbgen.ListMembersRow, error)
}

// Club is a snapshot of the teams and the disambiguated roster.
type Club struct {
	Teams  []Team
	Roster []roster.Entry
}

// LoadClub reads teams and members in parallel.
func LoadClub(ctx context.Context, q ClubQueries) (Club, error) {
	var club Club
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := q.ListTeams(groupCtx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		club.Teams = TeamsFromDB(rows)
		return nil
	})
	group.Go(func() error {
		rows, err := q.ListMembers(groupCtx)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		club.Roster = Roster(MembersFromDB(rows))
		return nil
	})
	if err := group.Wait(); err != nil {
		return Club{}, err
	}
	return club, nil
}

func (c Club) TeamNames() []string {
	return TeamNames(c.Teams)
}

// Team returns the team called name, or nil.
func (c Club) Team(name string) *Team {
	for i := range c.Teams {
		if c.Teams[i].Name == name {
			return &c.Teams[i]
		}
	}
	return nil
}
