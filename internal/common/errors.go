// Package common defines shared constants and sentinel errors used across
// transport, storage and state layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Transport errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrRejected marks any other failure reported by the backend, either a
	// non-2xx status or an envelope with success:false.
	ErrRejected = errors.New("rejected by server")
	// ErrMalformedResponse marks a reply that is not the expected JSON envelope.
	ErrMalformedResponse = errors.New("malformed response")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMalformedSession = errors.New("malformed persisted session")
	ErrTokenExpired     = errors.New("token expired")

	// Validation errors.
	ErrValidation = errors.New("validation failed")
)
