package designation

import "strings"

// EditableRoles computes the table roles a viewer belonging to viewerTeams may fill on
// a match of the given home category. The home team may always fill every table role;
// other teams get the roles their designation entries name. Referees are never granted
// here.
func EditableRoles(category, text string, viewerTeams []string) RoleSet {
	return NewCodec(viewerTeams).EditableRoles(category, text, viewerTeams)
}

func (c Codec) EditableRoles(category, text string, viewerTeams []string) RoleSet {
	teams := make(map[string]struct{}, len(viewerTeams))
	for _, team := range viewerTeams {
		team = strings.TrimSpace(team)
		if team != "" {
			teams[team] = struct{}{}
		}
	}
	if len(teams) == 0 {
		return 0
	}

	var granted RoleSet
	if _, ok := teams[strings.TrimSpace(category)]; ok {
		granted = AllTableRoles
	}
	for _, assignment := range c.Decode(text) {
		if _, ok := teams[assignment.Team]; ok {
			granted = granted.Union(assignment.Roles)
		}
	}
	return granted
}
