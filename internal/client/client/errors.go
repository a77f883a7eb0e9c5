package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is what the backend answers while the email is unverified.
	ErrForbidden = errors.New("forbidden")
	// ErrRejected covers the remaining 4xx answers: validation, conflicts.
	ErrRejected    = errors.New("request rejected")
	ErrBadResponse = errors.New("unexpected response")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}

// Message returns the text a user should see for err: the backend's own
// message when there is one, otherwise fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "cannot reach the server, try again later"
	}
	return fallback
}
