// Package stats builds the officials leaderboard: how often each club member filled a
// role slot, and for which teams. It is a full recomputation over the match history.
package stats

import (
	"sort"
	"strings"

	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/roster"
)

// PageSize is the default number of leaderboard rows per page.
const PageSize = 10

// TeamCredit counts the slots a person filled on behalf of one team.
type TeamCredit struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}

// Entry is one leaderboard row.
type Entry struct {
	Identity roster.Entry `json:"identity"`
	Scorer   int          `json:"scorer"`
	Timer    int          `json:"timer"`
	Referee  int          `json:"referee"`
	Total    int          `json:"total"`
	// Teams is ordered by first credit.
	Teams []TeamCredit `json:"teams"`
}

// TopTeam is the most credited team, the earliest credited one on ties.
func (e Entry) TopTeam() string {
	best := TeamCredit{}
	for _, credit := range e.Teams {
		if credit.Count > best.Count {
			best = credit
		}
	}
	return best.Team
}

// BadgeTeam is the team shown next to the person: their own team when known, otherwise
// the team they were most often credited for.
func (e Entry) BadgeTeam() string {
	if team := e.Identity.TeamName(); team != "" {
		return team
	}
	return e.TopTeam()
}

func (e *Entry) credit(team string) {
	team = strings.TrimSpace(team)
	if team == "" {
		return
	}
	for i := range e.Teams {
		if e.Teams[i].Team == team {
			e.Teams[i].Count++
			return
		}
	}
	e.Teams = append(e.Teams, TeamCredit{Team: team, Count: 1})
}

// Scope decides whether an identity may be credited.
type Scope func(roster.Entry) bool

// TeamScope credits only roster entries belonging to one of teams.
func TeamScope(teams []string) Scope {
	set := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		if team = strings.TrimSpace(team); team != "" {
			set[team] = struct{}{}
		}
	}
	return func(entry roster.Entry) bool {
		_, ok := set[entry.TeamName()]
		return ok
	}
}

type Options struct {
	// Scope restricts who is credited. Names are still resolved against the whole
	// roster, so a namesake outside the scope is never credited by mistake.
	Scope Scope
	// KnownTeams lets bare team names in designations attribute credit.
	KnownTeams []string
}

// Build scans every role slot of every match and returns the leaderboard sorted by total,
// highest first. Ties keep the order in which identities were first seen. Matches are
// processed by date, time and id, so the result does not depend on the input order.
//
// Scorer, timekeeper and referee slots count towards the headline columns and the total.
// Hall and bar manager slots only add team credit. Team credit goes to the designated
// team owning the slot's role, the person's own team first when several teams own it,
// and to the match category otherwise.
func Build(matches []models.Match, entries []roster.Entry, opts Options) []Entry {
	codec := designation.NewCodec(opts.KnownTeams)

	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.ID < b.ID
	})

	var board []Entry
	positions := make(map[int]int)

	for _, match := range ordered {
		assignments := codec.Decode(match.Designation)
		matchContext := match.IdentityContext()

		for _, slot := range models.Slots {
			value := strings.TrimSpace(match.SlotValue(slot))
			if value == "" {
				continue
			}
			if slot.IsReferee() && !match.ClubReferee {
				continue
			}

			index := roster.ResolveIndex(value, matchContext, entries)
			if index < 0 {
				continue
			}
			identity := entries[index]
			if opts.Scope != nil && !opts.Scope(identity) {
				continue
			}

			position, ok := positions[index]
			if !ok {
				position = len(board)
				positions[index] = position
				board = append(board, Entry{Identity: identity})
			}
			entry := &board[position]

			switch slot {
			case models.SlotScorer:
				entry.Scorer++
				entry.Total++
			case models.SlotTimekeeper:
				entry.Timer++
				entry.Total++
			case models.SlotReferee1, models.SlotReferee2:
				entry.Referee++
				entry.Total++
			}
			entry.credit(creditedTeam(slot, assignments, identity, match.Category))
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Total > board[j].Total
	})
	return board
}

func creditedTeam(slot models.Slot, assignments []designation.Assignment, identity roster.Entry, category string) string {
	if role, ok := slot.TableRole(); ok {
		owners := designation.TeamsWith(assignments, role)
		for _, owner := range owners {
			if identity.OnTeam(owner) {
				return owner
			}
		}
		if len(owners) > 0 {
			return owners[0]
		}
	}
	return strings.TrimSpace(category)
}

// Page returns page index (zero based) of entries and the number of pages. Out of range
// indexes are clamped. A size below one means PageSize.
func Page(entries []Entry, index, size int) ([]Entry, int) {
	if size < 1 {
		size = PageSize
	}
	pages := (len(entries) + size - 1) / size
	if pages == 0 {
		return nil, 0
	}
	if index < 0 {
		index = 0
	}
	if index >= pages {
		index = pages - 1
	}
	start := index * size
	end := start + size
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end], pages
}
