package designation

import "testing"

func TestEditableRoles(t *testing.T) {
	const multi = "U13 Garçons {Marqueur} + U15 Filles {Buvette, Respo Salle}"

	tests := []struct {
		name        string
		category    string
		designation string
		viewerTeams []string
		want        RoleSet
	}{
		{
			name:        "home team gets every table role without designation",
			category:    "U13 Garçons",
			designation: "",
			viewerTeams: []string{"U13 Garçons"},
			want:        AllTableRoles,
		},
		{
			name:        "designated team gets its listed roles",
			category:    "Seniors",
			designation: multi,
			viewerTeams: []string{"U15 Filles"},
			want:        NewRoleSet(RoleBarManager, RoleHallManager),
		},
		{
			name:        "unlisted team gets nothing",
			category:    "Seniors",
			designation: multi,
			viewerTeams: []string{"U17 Garçons"},
			want:        0,
		},
		{
			name:        "several viewer teams union their grants",
			category:    "Seniors",
			designation: multi,
			viewerTeams: []string{"U13 Garçons", "U15 Filles"},
			want:        NewRoleSet(RoleScorer, RoleBarManager, RoleHallManager),
		},
		{
			name:        "legacy designation grants scorer and timekeeper",
			category:    "Seniors",
			designation: "Table : U11 Filles",
			viewerTeams: []string{"U11 Filles"},
			want:        LegacyRoles,
		},
		{
			name:        "bare viewer team is recognized",
			category:    "Seniors",
			designation: "U11 Filles",
			viewerTeams: []string{"U11 Filles"},
			want:        LegacyRoles,
		},
		{
			name:        "deleted team in designation grants nothing",
			category:    "Seniors",
			designation: "Ancienne équipe {Marqueur}",
			viewerTeams: []string{"U11 Filles"},
			want:        0,
		},
		{
			name:        "no viewer teams",
			category:    "Seniors",
			designation: multi,
			viewerTeams: nil,
			want:        0,
		},
		{
			name:        "blank category never matches",
			category:    "",
			designation: "",
			viewerTeams: []string{"  "},
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EditableRoles(tt.category, tt.designation, tt.viewerTeams)
			if got != tt.want {
				t.Fatalf("EditableRoles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEditableRolesNeverExceedTableRoles(t *testing.T) {
	designations := []string{
		"",
		"Seniors {Arbitre}",
		"Seniors {Arbitre, Marqueur, Chronométreur, Respo Salle, Buvette}",
		"Table : Seniors",
		"Seniors",
	}
	for _, text := range designations {
		got := EditableRoles("Seniors", text, []string{"Seniors"})
		if got&^AllTableRoles != 0 {
			t.Fatalf("EditableRoles(%q) = %08b, has bits outside table roles", text, got)
		}
	}
}
