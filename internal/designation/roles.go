package designation

import (
	"encoding/json"
	"strings"
)

// Role is one table-official duty a team can be designated for.
// Referees are not roles: they are gated by the match's club-referee flag.
type Role uint8

const (
	RoleScorer Role = 1 << iota
	RoleTimekeeper
	RoleHallManager
	RoleBarManager
)

// Labels as they appear inside the braces of a designation segment.
const (
	LabelScorer      = "Marqueur"
	LabelTimekeeper  = "Chronométreur"
	LabelHallManager = "Respo Salle"
	LabelBarManager  = "Buvette"
)

// canonicalRoles fixes the order labels are written in.
var canonicalRoles = []Role{RoleScorer, RoleTimekeeper, RoleHallManager, RoleBarManager}

func (r Role) Label() string {
	switch r {
	case RoleScorer:
		return LabelScorer
	case RoleTimekeeper:
		return LabelTimekeeper
	case RoleHallManager:
		return LabelHallManager
	case RoleBarManager:
		return LabelBarManager
	default:
		return ""
	}
}

// Key is the machine name used in JSON payloads and form fields.
func (r Role) Key() string {
	switch r {
	case RoleScorer:
		return "scorer"
	case RoleTimekeeper:
		return "timekeeper"
	case RoleHallManager:
		return "hall_manager"
	case RoleBarManager:
		return "bar_manager"
	default:
		return ""
	}
}

func (r Role) String() string {
	return r.Key()
}

// RoleFromLabel maps a human-readable label to its role. Matching ignores case and
// surrounding whitespace; anything else (including the historical "Arbitre") is unknown.
func RoleFromLabel(label string) (Role, bool) {
	label = strings.TrimSpace(label)
	for _, role := range canonicalRoles {
		if strings.EqualFold(label, role.Label()) {
			return role, true
		}
	}
	return 0, false
}

// RoleFromKey is the inverse of Role.Key.
func RoleFromKey(key string) (Role, bool) {
	key = strings.TrimSpace(key)
	for _, role := range canonicalRoles {
		if key == role.Key() {
			return role, true
		}
	}
	return 0, false
}

// RoleSet is a set of roles stored as a bitmask.
type RoleSet uint8

const (
	// AllTableRoles is granted to the home team of a match.
	AllTableRoles = RoleSet(RoleScorer | RoleTimekeeper | RoleHallManager | RoleBarManager)
	// LegacyRoles is implied by the legacy prefix and bare-team forms.
	LegacyRoles = RoleSet(RoleScorer | RoleTimekeeper)
)

func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		set = set.With(role)
	}
	return set
}

func (s RoleSet) Has(role Role) bool {
	return role != 0 && s&RoleSet(role) == RoleSet(role)
}

func (s RoleSet) With(role Role) RoleSet {
	return s | (RoleSet(role) & AllTableRoles)
}

func (s RoleSet) Union(other RoleSet) RoleSet {
	return (s | other) & AllTableRoles
}

func (s RoleSet) IsEmpty() bool {
	return s&AllTableRoles == 0
}

// Roles lists the members of the set in canonical order.
func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, len(canonicalRoles))
	for _, role := range canonicalRoles {
		if s.Has(role) {
			roles = append(roles, role)
		}
	}
	return roles
}

func (s RoleSet) Labels() []string {
	roles := s.Roles()
	labels := make([]string, len(roles))
	for i, role := range roles {
		labels[i] = role.Label()
	}
	return labels
}

func (s RoleSet) Keys() []string {
	roles := s.Roles()
	keys := make([]string, len(roles))
	for i, role := range roles {
		keys[i] = role.Key()
	}
	return keys
}

func (s RoleSet) String() string {
	return "{" + strings.Join(s.Keys(), ", ") + "}"
}

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	var set RoleSet
	for _, key := range keys {
		if role, ok := RoleFromKey(key); ok {
			set = set.With(role)
		}
	}
	*s = set
	return nil
}
