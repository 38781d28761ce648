package customer

import "time"

// Status marks whether a customer is currently served.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer is a company whose incidents the service desk tracks.
type Customer struct {
	ID           string
	Name         string
	Code         string
	Status       Status
	ContactEmail *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}
