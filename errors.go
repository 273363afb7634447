package assetvault

import "errors"

var (
	// ErrNotFound is returned when a client name or asset file is unknown
	ErrNotFound = errors.New("not found")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidConfig is returned at startup when client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnauthorized is returned when credential headers are missing
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a presented id/secret pair does not match
	ErrForbidden = errors.New("forbidden")
)
