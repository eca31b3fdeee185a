package models

import "errors"

// Domain error taxonomy. Services wrap these with context via
// fmt.Errorf("%w: ..."); controllers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)
