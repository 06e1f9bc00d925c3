// internal/models/member.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/roster"
)

// DefaultPhoneRegion is used for numbers typed without an international prefix.
const DefaultPhoneRegion = "FR"

type Member struct {
	ID        int64     `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	TeamID    *int64    `json:"teamId,omitempty"`
	TeamName  *string   `json:"teamName,omitempty"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	IsCoach   bool      `json:"isCoach"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m Member) DisplayName() string {
	return roster.DisplayName(m.LastName, m.FirstName)
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.LastName) == "" && strings.TrimSpace(m.FirstName) == "" {
		return fmt.Errorf("last_name or first_name is required")
	}
	if strings.TrimSpace(m.Phone) != "" && !IsPhoneNumber(m.Phone) {
		return fmt.Errorf("phone must be a valid phone number")
	}
	return nil
}

// RosterEntry converts the member into something role slots can name.
func (m Member) RosterEntry() roster.Entry {
	return roster.Entry{
		ID:       m.ID,
		Name:     m.DisplayName(),
		Team:     m.TeamName,
		ImageURL: m.ImageURL,
		IsCoach:  m.IsCoach,
	}
}

// Roster builds the disambiguated roster from members in the order given.
func Roster(members []Member) []roster.Entry {
	entries := make([]roster.Entry, 0, len(members))
	for _, member := range members {
		entries = append(entries, member.RosterEntry())
	}
	return roster.Disambiguate(entries)
}

func MemberFromDB(row dbgen.ListMembersRow) Member {
	member := Member{
		ID:        row.ID,
		LastName:  row.LastName,
		FirstName: row.FirstName,
		TeamName:  nullStringPtr(row.TeamName),
		ImageURL:  nullStringPtr(row.ImageUrl),
		IsCoach:   row.IsCoach,
		CreatedAt: row.CreatedAt,
	}
	if row.TeamID.Valid {
		id := row.TeamID.Int64
		member.TeamID = &id
	}
	if row.Phone.Valid {
		member.Phone = row.Phone.String
	}
	return member
}

func MembersFromDB(rows []dbgen.ListMembersRow) []Member {
	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, MemberFromDB(row))
	}
	return members
}

// IsPhoneNumber reports whether value parses as a valid number, assuming the default
// region when no country code is given. Email addresses never qualify.
func IsPhoneNumber(value string) bool {
	_, err := NormalizePhone(value)
	return err == nil
}

// NormalizePhone returns value in E.164 form.
func NormalizePhone(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("phone number is empty")
	}
	if strings.ContainsAny(value, "@") || strings.IndexFunc(value, isLetter) >= 0 {
		return "", fmt.Errorf("invalid phone number: %q", value)
	}
	number, err := phonenumbers.Parse(value, DefaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", fmt.Errorf("invalid phone number: %q", value)
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
