package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNoActiveInterview = errors.New("no active interview")
	ErrTestCompleted     = errors.New("test already completed")
	ErrRequestInFlight   = errors.New("request already in flight")
	ErrWrongPhase        = errors.New("operation not allowed in current phase")
)
