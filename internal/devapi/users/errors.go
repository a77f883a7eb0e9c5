package users

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidInput       = errors.New("invalid input")
)

// Refinements of ErrInvalidInput.
var (
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email", ErrInvalidInput)
	ErrPasswordRequired   = fmt.Errorf("%w: password is required", ErrInvalidInput)
	ErrInvalidAccountType = fmt.Errorf("%w: unknown account type", ErrInvalidInput)
	ErrWrongAccountType   = fmt.Errorf("%w: operation not allowed for this account type", ErrInvalidInput)
	ErrMissingFields      = fmt.Errorf("%w: required fields missing", ErrInvalidInput)
	ErrInvalidPhoto       = fmt.Errorf("%w: invalid photo", ErrInvalidInput)
)
