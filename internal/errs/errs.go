// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrUnauthenticated indicates a missing, malformed, or rejected credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound indicates the requested entity (city or history record) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstream indicates a provider returned a non-success response or the
	// transport to it failed.
	ErrUpstream = errors.New("upstream failure")

	// ErrStorage indicates the document store rejected or failed an operation.
	ErrStorage = errors.New("storage failure")

	// ErrInvalid indicates the request payload failed validation.
	ErrInvalid = errors.New("invalid request")

	// ErrAlreadyExists indicates a uniqueness violation (e.g., email already registered).
	ErrAlreadyExists = errors.New("already exists")
)
