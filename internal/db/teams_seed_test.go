package db_test

import (
	"context"
	"strings"
	"testing"

	"github.com/codr1/clubtable/internal/db"
	"github.com/codr1/clubtable/internal/testutil"
)

func TestParseTeamsFile(t *testing.T) {
	teams, err := db.ParseTeamsFile()
	if err != nil {
		t.Fatalf("ParseTeamsFile() error = %v", err)
	}

	// assets/teams currently defines 8 teams.
	if len(teams) != 8 {
		t.Fatalf("ParseTeamsFile() team count = %d, want 8", len(teams))
	}
	for _, team := range teams {
		if err := team.Validate(); err != nil {
			t.Fatalf("team %q failed validation: %v", team.Name, err)
		}
	}
	if teams[0].Name != "U11 Filles" {
		t.Fatalf("first team = %q, want U11 Filles", teams[0].Name)
	}
}

func TestParseTeamsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"incomplete block", "Seniors\n#111827\n"},
		{"bad colour", "Seniors\n#11182\n#f9fafb\n"},
		{"designation syntax in name", "A + B\n#111827\n#f9fafb\n"},
		{"duplicate", "Seniors\n#111827\n#f9fafb\nSeniors\n#111827\n#f9fafb\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.ParseTeams(strings.NewReader(tt.input)); err == nil {
				t.Fatalf("ParseTeams() error = nil, want error")
			}
		})
	}
}

func TestSeedTeamsOnlyOnce(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	created, err := database.SeedTeams(ctx)
	if err != nil {
		t.Fatalf("SeedTeams() error = %v", err)
	}
	if created != 8 {
		t.Fatalf("SeedTeams() created = %d, want 8", created)
	}

	created, err = database.SeedTeams(ctx)
	if err != nil {
		t.Fatalf("second SeedTeams() error = %v", err)
	}
	if created != 0 {
		t.Fatalf("second SeedTeams() created = %d, want 0", created)
	}

	count, err := database.Queries.CountTeams(ctx)
	if err != nil {
		t.Fatalf("CountTeams() error = %v", err)
	}
	if count != 8 {
		t.Fatalf("CountTeams() = %d, want 8", count)
	}
}
