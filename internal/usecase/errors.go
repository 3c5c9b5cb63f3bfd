package usecase

import "errors"

// Sentinel errors shared by all services; handlers map these onto HTTP
// status codes with errors.Is so every route answers with the same envelope.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
)
