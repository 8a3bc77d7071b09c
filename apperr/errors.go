package apperr

import "errors"

var (
	ErrNotFound      = errors.New("note not found")
	ErrInvalidID     = errors.New("invalid note ID")
	ErrValidation    = errors.New("validation failed")
	ErrNotConfigured = errors.New("OpenAI API key not configured")
)
