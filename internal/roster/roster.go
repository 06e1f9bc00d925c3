// Package roster maps the free-text names typed into match role slots back to club
// members. Nothing links a slot to a member in storage; resolution happens on read.
package roster

import (
	"fmt"
	"strings"
)

// Entry is one person a role slot can name.
type Entry struct {
	ID int64 `json:"id"`
	// Name is the display name, suffixed with the team when another entry shares it.
	Name string `json:"name"`
	// OriginalName is the display name before any suffix was added.
	OriginalName string  `json:"originalName"`
	Team         *string `json:"team,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	IsCoach      bool    `json:"isCoach"`
}

// TeamName returns the entry's team or "" when it has none.
func (e Entry) TeamName() string {
	if e.Team == nil {
		return ""
	}
	return strings.TrimSpace(*e.Team)
}

// OnTeam reports whether the entry belongs to team.
func (e Entry) OnTeam(team string) bool {
	team = strings.TrimSpace(team)
	return team != "" && e.TeamName() == team
}

// MatchContext carries the parts of a match used to break ties between namesakes.
type MatchContext struct {
	Category    string
	Designation string
}

// DisplayName formats a member name as "LASTNAME Firstname".
func DisplayName(lastName, firstName string) string {
	lastName = strings.ToUpper(strings.TrimSpace(lastName))
	firstName = strings.TrimSpace(firstName)
	switch {
	case lastName == "":
		return firstName
	case firstName == "":
		return lastName
	default:
		return lastName + " " + firstName
	}
}

// Disambiguate suffixes "(TEAM)" to every name shared by more than one entry, so that
// picking a name from the roster records which namesake was meant. Unique names are
// left alone. Running it twice gives the same result.
func Disambiguate(entries []Entry) []Entry {
	counts := make(map[string]int, len(entries))
	for _, entry := range entries {
		counts[baseName(entry)]++
	}

	out := make([]Entry, len(entries))
	for i, entry := range entries {
		base := baseName(entry)
		entry.OriginalName = base
		entry.Name = base
		if counts[base] > 1 && entry.TeamName() != "" {
			entry.Name = fmt.Sprintf("%s (%s)", base, entry.TeamName())
		}
		out[i] = entry
	}
	return out
}

func baseName(entry Entry) string {
	if name := strings.TrimSpace(entry.OriginalName); name != "" {
		return name
	}
	return strings.TrimSpace(entry.Name)
}

// Candidates lists the entries a slot value may refer to: exact display-name matches
// first, and only when there are none, entries whose original name matches. The
// fallback keeps values written before a suffix was introduced resolvable.
func Candidates(name string, entries []Entry) []Entry {
	indexes := candidateIndexes(name, entries)
	candidates := make([]Entry, len(indexes))
	for i, index := range indexes {
		candidates[i] = entries[index]
	}
	return candidates
}

func candidateIndexes(name string, entries []Entry) []int {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var indexes []int
	for i, entry := range entries {
		if strings.TrimSpace(entry.Name) == name {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) > 0 {
		return indexes
	}

	for i, entry := range entries {
		if original := strings.TrimSpace(entry.OriginalName); original != "" && original == name {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// Resolve picks the entry a slot value names. It reports false when nothing matches,
// in which case the value is shown as typed.
func Resolve(name string, match MatchContext, entries []Entry) (Entry, bool) {
	index := ResolveIndex(name, match, entries)
	if index < 0 {
		return Entry{}, false
	}
	return entries[index], true
}

// ResolveIndex is Resolve returning the position in entries, or -1.
//
// With several candidates it prefers one on the match's home team, then one whose team
// name appears anywhere in the designation text, then the first in roster order. The
// designation check is a plain substring test ("U1" is found in "U13 {...}"); it is a
// heuristic and the first-candidate fallback makes the result deterministic either way.
func ResolveIndex(name string, match MatchContext, entries []Entry) int {
	indexes := candidateIndexes(name, entries)
	switch len(indexes) {
	case 0:
		return -1
	case 1:
		return indexes[0]
	}

	for _, index := range indexes {
		if entries[index].OnTeam(match.Category) {
			return index
		}
	}
	for _, index := range indexes {
		team := entries[index].TeamName()
		if team != "" && strings.Contains(match.Designation, team) {
			return index
		}
	}
	return indexes[0]
}

// Options lists the names a coach can pick for a slot: their own name first, then
// members of their teams, then the rest of the roster. Names are not repeated.
func Options(viewerName string, viewerTeams []string, entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries)+1)
	options := make([]string, 0, len(entries)+1)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		options = append(options, name)
	}

	add(viewerName)
	for _, entry := range entries {
		for _, team := range viewerTeams {
			if entry.OnTeam(team) {
				add(entry.Name)
				break
			}
		}
	}
	for _, entry := range entries {
		add(entry.Name)
	}
	return options
}
