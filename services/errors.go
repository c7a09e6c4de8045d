package services

import "errors"

// Operation errors surfaced to the HTTP layer. Controllers map these to
// status codes with errors.Is; anything else is a 500.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrAlreadyMember      = errors.New("already a member")
	ErrNotAMember         = errors.New("not a member")
	ErrCapacityExceeded   = errors.New("community is full")
	ErrForbiddenOperation = errors.New("operation not allowed")
)
