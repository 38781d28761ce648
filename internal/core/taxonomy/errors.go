package taxonomy

import "errors"

var (
	ErrInvalidID         = errors.New("taxonomy: invalid id")
	ErrInvalidKind       = errors.New("taxonomy: invalid kind")
	ErrInvalidName       = errors.New("taxonomy: name is required")
	ErrTypeNotFound      = errors.New("taxonomy: type not found")
	ErrNameAlreadyExists = errors.New("taxonomy: name already exists for kind")
)
