package matches

import (
	"strings"

	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/models"
	"github.com/codr1/clubtable/internal/roster"
	"github.com/codr1/clubtable/internal/templates/layouts"
)

// SlotView is one role slot on the match sheet.
type SlotView struct {
	Slot     models.Slot
	Label    string
	Value    string
	Editable bool
	// Identity is set when Value names a roster member.
	Identity *roster.Entry
	// Hidden marks referee slots of matches without club referees.
	Hidden bool
}

// Sheet is everything the match sheet shows to one viewer.
type Sheet struct {
	Match       models.Match
	HomeTeam    *models.Team
	Assignments []designation.Assignment
	Slots       []SlotView
	Options     []string
	Colors      layouts.TeamColors
}

// CanEdit reports whether any slot on the sheet accepts input.
func (s Sheet) CanEdit() bool {
	for _, slot := range s.Slots {
		if slot.Editable {
			return true
		}
	}
	return false
}

// NewSheet resolves each slot value against entries and marks the slots in editable.
func NewSheet(match models.Match, codec designation.Codec, entries []roster.Entry, editable []models.Slot) Sheet {
	allowed := make(map[models.Slot]bool, len(editable))
	for _, slot := range editable {
		allowed[slot] = true
	}

	slots := make([]SlotView, 0, len(models.Slots))
	for _, slot := range models.Slots {
		view := SlotView{
			Slot:     slot,
			Label:    slot.Label(),
			Value:    match.SlotValue(slot),
			Editable: allowed[slot],
			Hidden:   slot.IsReferee() && !match.ClubReferee,
		}
		if strings.TrimSpace(view.Value) != "" {
			if identity, ok := roster.Resolve(view.Value, match.IdentityContext(), entries); ok {
				view.Identity = &identity
			}
		}
		slots = append(slots, view)
	}

	return Sheet{
		Match:       match,
		Assignments: codec.Decode(match.Designation),
		Slots:       slots,
	}
}

// Row is one line of the match list.
type Row struct {
	Match       models.Match
	Assignments []designation.Assignment
	// Granted is the viewer's table-role grant; admins see every role.
	Granted designation.RoleSet
	// Open counts designated slots still blank.
	Open int
}

func NewRows(matches []models.Match, codec designation.Codec, viewerTeams []string, isAdmin bool) []Row {
	rows := make([]Row, 0, len(matches))
	for _, match := range matches {
		granted := designation.AllTableRoles
		if !isAdmin {
			granted = codec.EditableRoles(match.Category, match.Designation, viewerTeams)
		}
		open := 0
		for _, slots := range match.OpenSlots(codec) {
			open += len(slots)
		}
		rows = append(rows, Row{
			Match:       match,
			Assignments: codec.Decode(match.Designation),
			Granted:     granted,
			Open:        open,
		})
	}
	return rows
}
