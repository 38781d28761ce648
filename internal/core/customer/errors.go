package customer

import "errors"

var (
	ErrInvalidID         = errors.New("customer: invalid id")
	ErrInvalidName       = errors.New("customer: name is required")
	ErrInvalidCode       = errors.New("customer: invalid code")
	ErrInvalidStatus     = errors.New("customer: invalid status")
	ErrCustomerNotFound  = errors.New("customer: not found")
	ErrCodeAlreadyExists = errors.New("customer: code already exists")
)
