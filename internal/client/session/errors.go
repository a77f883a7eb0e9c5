package session

import "errors"

var (
	// ErrInvalidSession marks a payload that cannot be turned into a Session.
	ErrInvalidSession = errors.New("invalid session payload")

	// ErrMalformedPayload marks bytes that are not a JSON object.
	ErrMalformedPayload = errors.New("malformed session payload")

	// ErrEmptyToken is returned by Login when no bearer token is supplied.
	ErrEmptyToken = errors.New("empty session token")

	// ErrExpired marks a persisted session older than the store's TTL.
	ErrExpired = errors.New("session expired")
)
