package cases

import "errors"

var (
	ErrInvalidID          = errors.New("cases: invalid id")
	ErrInvalidKind        = errors.New("cases: invalid kind")
	ErrInvalidTitle       = errors.New("cases: title is required")
	ErrInvalidDescription = errors.New("cases: description is required")
	ErrInvalidRequester   = errors.New("cases: requester id is required")
	ErrInvalidHandler     = errors.New("cases: handler id is required")
	ErrInvalidCaseType    = errors.New("cases: case type id is required")
	ErrInvalidStatus      = errors.New("cases: invalid status")
	ErrDateOrder          = errors.New("cases: end date must be after start date")
	ErrAlreadyClosed      = errors.New("cases: case is already completed")
	ErrCaseNotFound       = errors.New("cases: not found")
	ErrEmployeeNotFound   = errors.New("cases: employee not found")
	ErrCustomerNotFound   = errors.New("cases: customer not found")
	ErrCaseTypeNotFound   = errors.New("cases: case type not found")
	ErrCaseTypeInactive   = errors.New("cases: case type is inactive")
)
