package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/crmkeeper/internal/common"
)

// APIError is a failed call. Message is safe to show to the user.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.kind }

func kindForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	return common.ErrRejected
}

// Message extracts the user-facing text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}

// Rejected builds a server-rejection error for replies that parsed but are
// unusable, such as a login reply without a token.
func Rejected(msg string) *APIError {
	return &APIError{StatusCode: http.StatusOK, Message: msg, kind: common.ErrRejected}
}
