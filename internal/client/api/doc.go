// Package api is the HTTP/JSON transport to the CRM backend.
//
// # Overview
//
// Client is the transport-agnostic contract the stores depend on; HTTPClient
// implements it over net/http. Authenticated calls ask a TokenSource for the
// bearer token at request time, so a login or logout is visible to the very
// next request without rebuilding the client.
//
// Every reply is expected in the envelope
//
//	{"success": bool, "message": string, "data": any, "count": number}
//
// # Error Handling
//
// Failures come back as *APIError. Its Message is what a user should see:
// the server's message, a per-operation fallback, or the transport error
// text. The error also matches one of the common sentinels with errors.Is:
// ErrUnavailable (transport), ErrUnauthorized (401), ErrForbidden (403),
// ErrNotFound (404), ErrRejected (anything else), ErrMalformedResponse.
// A cancelled context is returned as the context's own error.
//
// Calls are never retried.
package api
