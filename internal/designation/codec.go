// Package designation reads and writes the designation text stored on a match: which
// teams owe which table-official roles. The administrator and coach screens share this
// package; the text itself is the only contract between them.
//
// Decoding tries three forms in order:
//
//	legacy    = "Table :" team                      -> {Marqueur, Chronométreur}
//	bracketed = segment { "+" segment }
//	segment   = team "{" [ label { "," label } ] "}"
//	label     = "Marqueur" | "Chronométreur" | "Respo Salle" | "Buvette" | other
//	bare      = team                                -> {Marqueur, Chronométreur}, known teams only
//
// Whitespace around tokens is insignificant. Unknown labels (old data carries
// "Arbitre") are dropped, segments that do not fit the grammar are skipped, and text
// matching none of the forms decodes to nothing. Team names cannot contain '+', '{' or '}'.
package designation

import (
	"regexp"
	"strings"
)

const (
	// LegacyPrefix introduces the single-team form written before multi-team designations.
	LegacyPrefix = "Table : "
	// Separator joins the segments of a bracketed designation.
	Separator = " + "
)

var segmentPattern = regexp.MustCompile(`^\s*([^{}+]*[^{}+\s])\s*\{([^{}]*)\}\s*$`)

// Assignment is one designated team and the roles it owes.
type Assignment struct {
	Team  string  `json:"team"`
	Roles RoleSet `json:"roles"`
}

// Codec decodes designations against a set of known team names, which only the bare
// form needs. The zero value knows no teams.
type Codec struct {
	teams map[string]struct{}
}

func NewCodec(knownTeams []string) Codec {
	teams := make(map[string]struct{}, len(knownTeams))
	for _, team := range knownTeams {
		team = strings.TrimSpace(team)
		if team == "" {
			continue
		}
		teams[team] = struct{}{}
	}
	return Codec{teams: teams}
}

// Decode decodes text without any known teams.
func Decode(text string) []Assignment {
	return Codec{}.Decode(text)
}

// Decode never fails: unrecognized text yields an empty result.
func (c Codec) Decode(text string) []Assignment {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if assignments, ok := decodeLegacy(text); ok {
		return assignments
	}
	if assignments, ok := decodeBracketed(text); ok {
		return assignments
	}
	return c.decodeBare(text)
}

func decodeLegacy(text string) ([]Assignment, bool) {
	rest, ok := strings.CutPrefix(text, strings.TrimSpace(LegacyPrefix))
	if !ok {
		return nil, false
	}
	team := strings.TrimSpace(rest)
	if team == "" {
		return nil, true
	}
	return []Assignment{{Team: team, Roles: LegacyRoles}}, true
}

func decodeBracketed(text string) ([]Assignment, bool) {
	if !strings.Contains(text, "{") {
		return nil, false
	}

	var assignments []Assignment
	index := make(map[string]int)
	for _, segment := range strings.Split(text, strings.TrimSpace(Separator)) {
		match := segmentPattern.FindStringSubmatch(segment)
		if match == nil {
			continue
		}
		team := match[1]
		roles := parseLabels(match[2])

		// A team listed twice owes the union of both role lists.
		if i, seen := index[team]; seen {
			assignments[i].Roles = assignments[i].Roles.Union(roles)
			continue
		}
		index[team] = len(assignments)
		assignments = append(assignments, Assignment{Team: team, Roles: roles})
	}
	return assignments, true
}

func parseLabels(list string) RoleSet {
	var roles RoleSet
	for _, label := range strings.Split(list, ",") {
		if role, ok := RoleFromLabel(label); ok {
			roles = roles.With(role)
		}
	}
	return roles
}

func (c Codec) decodeBare(text string) []Assignment {
	if _, ok := c.teams[text]; !ok {
		return nil
	}
	return []Assignment{{Team: text, Roles: LegacyRoles}}
}

// Encode always writes the bracketed form, labels in canonical order. Entries with a
// blank team are dropped and repeated teams are merged.
func Encode(assignments []Assignment) string {
	merged := Merge(assignments)
	segments := make([]string, 0, len(merged))
	for _, assignment := range merged {
		segments = append(segments, assignment.Team+" {"+strings.Join(assignment.Roles.Labels(), ", ")+"}")
	}
	return strings.Join(segments, Separator)
}

// Merge trims team names, drops blank ones and unions the roles of repeated teams,
// keeping first-seen order.
func Merge(assignments []Assignment) []Assignment {
	merged := make([]Assignment, 0, len(assignments))
	index := make(map[string]int, len(assignments))
	for _, assignment := range assignments {
		team := strings.TrimSpace(assignment.Team)
		if team == "" {
			continue
		}
		if i, seen := index[team]; seen {
			merged[i].Roles = merged[i].Roles.Union(assignment.Roles)
			continue
		}
		index[team] = len(merged)
		merged = append(merged, Assignment{Team: team, Roles: assignment.Roles.Union(0)})
	}
	return merged
}

// Equivalent reports whether a and b designate the same teams for the same roles,
// ignoring order.
func Equivalent(a, b []Assignment) bool {
	left := Merge(a)
	right := Merge(b)
	if len(left) != len(right) {
		return false
	}
	roles := make(map[string]RoleSet, len(left))
	for _, assignment := range left {
		roles[assignment.Team] = assignment.Roles
	}
	for _, assignment := range right {
		got, ok := roles[assignment.Team]
		if !ok || got != assignment.Roles {
			return false
		}
	}
	return true
}

// TeamsWith returns the teams designated for role, in designation order.
func TeamsWith(assignments []Assignment, role Role) []string {
	var teams []string
	for _, assignment := range assignments {
		if assignment.Roles.Has(role) {
			teams = append(teams, assignment.Team)
		}
	}
	return teams
}
