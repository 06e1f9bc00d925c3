package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codr1/clubtable/internal/designation"
	"github.com/codr1/clubtable/internal/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the signed-in viewer. Teams are the team names the user coaches.
type AuthUser struct {
	ID          int64
	Email       string
	DisplayName string
	IsAdmin     bool
	Teams       []string
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

func IsAdmin(user *AuthUser) bool {
	return user != nil && user.IsAdmin
}

// RequireUser returns ErrUnauthenticated when ctx carries no user.
func RequireUser(ctx context.Context) (*AuthUser, error) {
	user := UserFromContext(ctx)
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// RequireAdmin returns ErrUnauthenticated or ErrForbidden unless ctx carries an administrator.
func RequireAdmin(ctx context.Context) (*AuthUser, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, ErrForbidden
	}
	return user, nil
}

// CoachesTeam reports whether team is one of the user's teams.
func (u *AuthUser) CoachesTeam(team string) bool {
	if u == nil {
		return false
	}
	team = strings.TrimSpace(team)
	if team == "" {
		return false
	}
	for _, own := range u.Teams {
		if strings.TrimSpace(own) == team {
			return true
		}
	}
	return false
}

// EditableSlots lists the role slots user may write on match. Administrators may write
// every slot. Coaches get the table slots granted by the designation and the referee
// slots when the match uses club referees.
func EditableSlots(user *AuthUser, match models.Match) []models.Slot {
	if user == nil {
		return nil
	}
	if user.IsAdmin {
		return append([]models.Slot(nil), models.Slots...)
	}

	granted := match.EditableRoles(user.Teams)
	slots := make([]models.Slot, 0, len(models.Slots))
	for _, slot := range models.Slots {
		if canEditSlot(granted, match, slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// AuthorizeSlotUpdate checks an update of slots on match before it is written. The
// error wraps ErrForbidden and names the first refused slot.
func AuthorizeSlotUpdate(user *AuthUser, match models.Match, slots []models.Slot) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.IsAdmin {
		return nil
	}

	granted := match.EditableRoles(user.Teams)
	for _, slot := range slots {
		if canEditSlot(granted, match, slot) {
			continue
		}
		if slot.IsReferee() {
			return fmt.Errorf("%w: %s can only be set when the match uses club referees", ErrForbidden, slot.Label())
		}
		return fmt.Errorf("%w: your teams are not designated for %s on this match", ErrForbidden, slot.Label())
	}
	return nil
}

func canEditSlot(granted designation.RoleSet, match models.Match, slot models.Slot) bool {
	if slot.IsReferee() {
		return match.ClubReferee
	}
	role, ok := slot.TableRole()
	return ok && granted.Has(role)
}
