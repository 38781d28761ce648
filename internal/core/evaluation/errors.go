package evaluation

import "errors"

var (
	ErrInvalidRole          = errors.New("evaluation: invalid role")
	ErrInvalidCategory      = errors.New("evaluation: invalid category")
	ErrIncompleteAssessment = errors.New("evaluation: required categories missing")
)
