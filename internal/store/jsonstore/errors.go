package jsonstore

import "errors"

// Validation and lookup failures. Callers match them with errors.Is; the
// wrapped message carries the offending value.
var (
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrMissingField    = errors.New("required field is empty")
	ErrNotFound        = errors.New("session not found")
	ErrAmbiguousID     = errors.New("id prefix matches more than one session")
	ErrCorruptStore    = errors.New("store file does not match the session schema")
)
