package domain

import "errors"

// Sentinel errors shared across the repo. Callers wrap them with %w and
// branch with errors.Is; the HTTP layer maps them onto status codes.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)
