package taxonomy

import "time"

// Kind tells which case collection a type belongs to. Values mirror the
// case kinds so list screens can request the matching taxonomy.
type Kind string

const (
	KindIncident Kind = "incident"
	KindInternal Kind = "internal_case"
)

// Type is one configurable case-type or incident-type entry. Inactive
// entries stay stored and resolvable on old cases but are filtered out of
// pick lists and rejected on new assignments.
type Type struct {
	ID          string
	Kind        Kind
	Name        string
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func isValidKind(k Kind) bool {
	switch k {
	case KindIncident, KindInternal:
		return true
	default:
		return false
	}
}
