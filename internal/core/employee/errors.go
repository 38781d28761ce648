package employee

import "errors"

var (
	ErrInvalidID          = errors.New("employee: invalid id")
	ErrInvalidFullName    = errors.New("employee: full name is required")
	ErrInvalidEmail       = errors.New("employee: invalid email")
	ErrInvalidStatus      = errors.New("employee: invalid status")
	ErrEmployeeNotFound   = errors.New("employee: not found")
	ErrEmailAlreadyExists = errors.New("employee: email already exists")
)
