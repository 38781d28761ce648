package evaluation

// Category is one scoring axis of a case assessment.
type Category string

const (
	CategoryDifficulty Category = "difficulty"
	CategoryTime       Category = "time"
	CategoryImpact     Category = "impact"
	CategoryUrgency    Category = "urgency"
	CategoryForm       Category = "form"
)

// Role identifies who submits an assessment.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var allCategories = []Category{
	CategoryDifficulty,
	CategoryTime,
	CategoryImpact,
	CategoryUrgency,
	CategoryForm,
}

// RequiredCategories lists the categories a role must score.
// The work form is scored by the requesting user only.
func RequiredCategories(role Role) ([]Category, error) {
	switch role {
	case RoleUser:
		return []Category{CategoryDifficulty, CategoryTime, CategoryImpact, CategoryUrgency, CategoryForm}, nil
	case RoleAdmin:
		return []Category{CategoryDifficulty, CategoryTime, CategoryImpact, CategoryUrgency}, nil
	default:
		return nil, ErrInvalidRole
	}
}

// ParseCategory validates a raw category value.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	switch c {
	case CategoryDifficulty, CategoryTime, CategoryImpact, CategoryUrgency, CategoryForm:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	switch r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}
