package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token already expired")

// now is replaced in tests.
var now = time.Now

// parseClaims reads the claims of a JWT without verifying its signature:
// the client cannot verify, and only uses them to fill gaps in the login
// response. An opaque token yields an error that callers may ignore.
func parseClaims(token string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("parse token exp: %w", err)
	}
	if exp != nil && !exp.After(now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
