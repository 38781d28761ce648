package employee

import "time"

// Status marks whether an employee can be assigned new cases.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee is a staff member who requests or handles cases.
type Employee struct {
	ID         string
	FullName   string
	Email      string
	Department *string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}
