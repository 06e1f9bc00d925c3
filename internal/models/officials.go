// internal/models/officials.go
package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbgen "github.com/codr1/clubtable/internal/db/generated"
)

var ErrMatchNotFound = errors.New("match not found")

// OfficialsQueries is the subset of generated queries an officials update needs.
type OfficialsQueries interface {
	GetMatch(ctx context.Context, id int64) (dbgen.Match, error)
	UpdateMatchOfficials(ctx context.Context, arg dbgen.UpdateMatchOfficialsParams) (dbgen.Match, error)
}

// SlotAuthorizer decides whether the caller may write the given slots of match.
type SlotAuthorizer func(match Match, slots []Slot) error

type UpdateOfficialsParams struct {
	MatchID int64
	Values  map[Slot]string
	// Authorize runs against the stored match before anything is written.
	Authorize SlotAuthorizer
}

// UpdateOfficials writes role-slot values to a match. Slots absent from Values keep their
// stored value. Callers should pass a transactional querier so that the authorization
// check and the write see the same row.
func UpdateOfficials(ctx context.Context, q OfficialsQueries, params UpdateOfficialsParams) (Match, error) {
	if q == nil {
		return Match{}, fmt.Errorf("queries are required")
	}
	if params.MatchID <= 0 {
		return Match{}, fmt.Errorf("match_id must be a positive integer")
	}
	if len(params.Values) == 0 {
		return Match{}, fmt.Errorf("at least one slot is required")
	}

	row, err := q.GetMatch(ctx, params.MatchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrMatchNotFound
		}
		return Match{}, err
	}
	match := MatchFromDB(row)

	slots := make([]Slot, 0, len(params.Values))
	for _, slot := range Slots {
		if _, ok := params.Values[slot]; ok {
			slots = append(slots, slot)
		}
	}
	if len(slots) != len(params.Values) {
		return Match{}, fmt.Errorf("unknown slot in update")
	}

	if params.Authorize != nil {
		if err := params.Authorize(match, slots); err != nil {
			return Match{}, err
		}
	}

	for _, slot := range slots {
		match.SetSlotValue(slot, params.Values[slot])
	}

	updated, err := q.UpdateMatchOfficials(ctx, dbgen.UpdateMatchOfficialsParams{
		Scorer:      match.Scorer,
		Timekeeper:  match.Timekeeper,
		HallManager: match.HallManager,
		BarManager:  match.BarManager,
		Referee1:    match.Referee1,
		Referee2:    match.Referee2,
		ID:          match.ID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrMatchNotFound
		}
		return Match{}, err
	}
	return MatchFromDB(updated), nil
}
