// internal/models/match.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/clubtable/internal/designation"
	dbgen "github.com/codr1/clubtable/internal/db/generated"
	"github.com/codr1/clubtable/internal/roster"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultMatchTime     = "14:00"
	DefaultMeetingOffset = 30 * time.Minute
)

// Slot is one of the six free-text role values on a match.
type Slot string

const (
	SlotScorer      Slot = "scorer"
	SlotTimekeeper  Slot = "timekeeper"
	SlotHallManager Slot = "hall_manager"
	SlotBarManager  Slot = "bar_manager"
	SlotReferee1    Slot = "referee1"
	SlotReferee2    Slot = "referee2"
)

// Slots lists every role slot in display order.
var Slots = []Slot{SlotScorer, SlotTimekeeper, SlotHallManager, SlotBarManager, SlotReferee1, SlotReferee2}

func ParseSlot(raw string) (Slot, bool) {
	raw = strings.TrimSpace(raw)
	for _, slot := range Slots {
		if string(slot) == raw {
			return slot, true
		}
	}
	return "", false
}

// TableRole maps a slot to the designation role that governs it. Referee slots have none.
func (s Slot) TableRole() (designation.Role, bool) {
	switch s {
	case SlotScorer:
		return designation.RoleScorer, true
	case SlotTimekeeper:
		return designation.RoleTimekeeper, true
	case SlotHallManager:
		return designation.RoleHallManager, true
	case SlotBarManager:
		return designation.RoleBarManager, true
	default:
		return 0, false
	}
}

func (s Slot) IsReferee() bool {
	return s == SlotReferee1 || s == SlotReferee2
}

func (s Slot) Label() string {
	switch s {
	case SlotScorer:
		return designation.LabelScorer
	case SlotTimekeeper:
		return designation.LabelTimekeeper
	case SlotHallManager:
		return designation.LabelHallManager
	case SlotBarManager:
		return designation.LabelBarManager
	case SlotReferee1:
		return "Arbitre 1"
	case SlotReferee2:
		return "Arbitre 2"
	default:
		return string(s)
	}
}

type Match struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	MeetingTime     string    `json:"meetingTime"`
	Category        string    `json:"category"`
	Opponent        string    `json:"opponent"`
	AlternateJersey bool      `json:"alternateJersey"`
	ClubReferee     bool      `json:"clubReferee"`
	Designation     string    `json:"designation"`
	Scorer          string    `json:"scorer"`
	Timekeeper      string    `json:"timekeeper"`
	HallManager     string    `json:"hallManager"`
	BarManager      string    `json:"barManager"`
	Referee1        string    `json:"referee1"`
	Referee2        string    `json:"referee2"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewMatch returns a match with the creation defaults: today's date in loc, the
// default kick-off time and a meeting time offset before it.
func NewMatch(now time.Time, loc *time.Location, defaultTime string, meetingOffset time.Duration) (Match, error) {
	if loc == nil {
		loc = time.Local
	}
	if strings.TrimSpace(defaultTime) == "" {
		defaultTime = DefaultMatchTime
	}
	meeting, err := MeetingTime(defaultTime, meetingOffset)
	if err != nil {
		return Match{}, err
	}
	return Match{
		Date:        now.In(loc).Format(DateLayout),
		Time:        strings.TrimSpace(defaultTime),
		MeetingTime: meeting,
	}, nil
}

// MeetingTime returns matchTime minus offset as HH:MM. A zero offset means the default.
func MeetingTime(matchTime string, offset time.Duration) (string, error) {
	parsed, err := time.Parse(TimeLayout, strings.TrimSpace(matchTime))
	if err != nil {
		return "", fmt.Errorf("match time must be in HH:MM format")
	}
	if offset <= 0 {
		offset = DefaultMeetingOffset
	}
	return parsed.Add(-offset).Format(TimeLayout), nil
}

// StartsAt combines the date and time in loc.
func (m Match) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout+" "+TimeLayout, m.Date+" "+m.Time, loc)
}

func (m Match) SlotValue(slot Slot) string {
	switch slot {
	case SlotScorer:
		return m.Scorer
	case SlotTimekeeper:
		return m.Timekeeper
	case SlotHallManager:
		return m.HallManager
	case SlotBarManager:
		return m.BarManager
	case SlotReferee1:
		return m.Referee1
	case SlotReferee2:
		return m.Referee2
	default:
		return ""
	}
}

func (m *Match) SetSlotValue(slot Slot, value string) {
	value = strings.TrimSpace(value)
	switch slot {
	case SlotScorer:
		m.Scorer = value
	case SlotTimekeeper:
		m.Timekeeper = value
	case SlotHallManager:
		m.HallManager = value
	case SlotBarManager:
		m.BarManager = value
	case SlotReferee1:
		m.Referee1 = value
	case SlotReferee2:
		m.Referee2 = value
	}
}

// IdentityContext is what the roster needs to break ties between namesakes.
func (m Match) IdentityContext() roster.MatchContext {
	return roster.MatchContext{Category: m.Category, Designation: m.Designation}
}

// EditableRoles is the table-role grant for a viewer on this match.
func (m Match) EditableRoles(viewerTeams []string) designation.RoleSet {
	return designation.EditableRoles(m.Category, m.Designation, viewerTeams)
}

// OpenSlots lists the table slots a designated team owes that are still blank.
func (m Match) OpenSlots(codec designation.Codec) map[string][]Slot {
	open := make(map[string][]Slot)
	for _, assignment := range codec.Decode(m.Designation) {
		for _, slot := range Slots {
			role, ok := slot.TableRole()
			if !ok || !assignment.Roles.Has(role) {
				continue
			}
			if strings.TrimSpace(m.SlotValue(slot)) == "" {
				open[assignment.Team] = append(open[assignment.Team], slot)
			}
		}
	}
	return open
}

func MatchFromDB(row dbgen.Match) Match {
	return Match{
		ID:              row.ID,
		Date:            row.MatchDate,
		Time:            row.MatchTime,
		MeetingTime:     row.MeetingTime,
		Category:        row.Category,
		Opponent:        row.Opponent,
		AlternateJersey: row.AlternateJersey,
		ClubReferee:     row.ClubReferee,
		Designation:     row.Designation,
		Scorer:          row.Scorer,
		Timekeeper:      row.Timekeeper,
		HallManager:     row.HallManager,
		BarManager:      row.BarManager,
		Referee1:        row.Referee1,
		Referee2:        row.Referee2,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func MatchesFromDB(rows []dbgen.Match) []Match {
	matches := make([]Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, MatchFromDB(row))
	}
	return matches
}
