package testutil

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/codr1/clubtable/internal/db"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
)

// TestPassword is the plain-text password of every user created by CreateUser.
const TestPassword = "correct horse battery staple"

func CreateTeam(t *testing.T, database *db.DB, name string) dbgen.Team {
	t.Helper()

	team, err := database.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{
		Name:           name,
		PrimaryColor:   "#1f2937",
		AlternateColor: "#e5e7eb",
	})
	if err != nil {
		t.Fatalf("create team %q: %v", name, err)
	}
	return team
}

// CreateMember adds a member; teamID 0 means no team.
func CreateMember(t *testing.T, database *db.DB, lastName, firstName string, teamID int64) dbgen.Member {
	t.Helper()

	params := dbgen.CreateMemberParams{
		LastName:  lastName,
		FirstName: firstName,
	}
	if teamID > 0 {
		params.TeamID = sql.NullInt64{Int64: teamID, Valid: true}
	}
	member, err := database.Queries.CreateMember(context.Background(), params)
	if err != nil {
		t.Fatalf("create member %s %s: %v", lastName, firstName, err)
	}
	return member
}

// CreateUser adds a user with TestPassword, linked to the given teams.
func CreateUser(t *testing.T, database *db.DB, email, displayName string, isAdmin bool, teamIDs ...int64) dbgen.User {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := database.Queries.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	for _, teamID := range teamIDs {
		if err := database.Queries.AddUserTeam(ctx, dbgen.AddUserTeamParams{UserID: user.ID, TeamID: teamID}); err != nil {
			t.Fatalf("link user %d to team %d: %v", user.ID, teamID, err)
		}
	}
	return user
}

func CreateMatch(t *testing.T, database *db.DB, params dbgen.CreateMatchParams) dbgen.Match {
	t.Helper()

	if params.MatchDate == "" {
		params.MatchDate = "2026-10-17"
	}
	if params.MatchTime == "" {
		params.MatchTime = "14:00"
	}
	if params.MeetingTime == "" {
		params.MeetingTime = "13:30"
	}
	match, err := database.Queries.CreateMatch(context.Background(), params)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return match
}
