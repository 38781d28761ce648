package cases

import (
	"time"

	"github.com/ngocxb/caseflow/internal/core/evaluation"
)

// Kind separates customer-facing incidents from internal cases. The two
// share one structure and lifecycle.
type Kind string

const (
	KindIncident Kind = "incident"
	KindInternal Kind = "internal_case"
)

// Status is the lifecycle state of a case.
type Status string

const (
	StatusReceived   Status = "received"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Case is an incident or internal case tracked from intake to resolution.
type Case struct {
	ID            string
	Kind          Kind
	Title         string
	Description   string
	RequesterID   string
	HandlerID     string
	CaseTypeID    string
	CustomerID    *string
	Status        Status
	StartDate     time.Time
	EndDate       *time.Time
	Notes         *string
	ReferenceCode *string

	UserAssessment  evaluation.Assessment
	AdminAssessment evaluation.Assessment

	CreatedAt time.Time
	UpdatedAt time.Time

	Requester *EmployeeSnapshot
	Handler   *EmployeeSnapshot
	CaseType  *TypeSnapshot
	Customer  *CustomerSnapshot
}

// EmployeeSnapshot carries the joined employee fields list views render.
type EmployeeSnapshot struct {
	ID       string
	FullName string
	Email    string
}

// TypeSnapshot carries the joined case-type fields.
type TypeSnapshot struct {
	ID     string
	Name   string
	Active bool
}

// CustomerSnapshot carries the joined customer fields.
type CustomerSnapshot struct {
	ID   string
	Name string
}

// CombinedTotal is the unweighted incident report total.
func (c *Case) CombinedTotal() int {
	return evaluation.CombinedTotal(c.UserAssessment, c.AdminAssessment)
}

// GrandTotal is the weighted internal-case report total.
func (c *Case) GrandTotal() float64 {
	return evaluation.GrandTotal(c.UserAssessment.Total(), c.AdminAssessment.Total())
}

func isValidKind(k Kind) bool {
	switch k {
	case KindIncident, KindInternal:
		return true
	default:
		return false
	}
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusReceived, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
