// Package auth issues and validates the JWTs the development backend hands
// out: session tokens after login and single-purpose email verification
// tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongPurpose = errors.New("token issued for another purpose")
)

// Token purposes.
const (
	PurposeSession = "session"
	PurposeVerify  = "verify"
)

// Claims carries the user identity the client reads back from the token.
type Claims struct {
	jwt.RegisteredClaims
	UserID          int64  `json:"user_id"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	EmailVerified   bool   `json:"email_verificado"`
	ProfileComplete bool   `json:"perfil_completo"`
	Purpose         string `json:"purpose"`
}

// Signer signs and checks tokens with one HMAC key.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secretKey string) *Signer {
	return &Signer{secret: []byte(secretKey), now: time.Now}
}

// GenerateToken signs claims valid for validityDuration from now.
func (s *Signer) GenerateToken(claims Claims, validityDuration time.Duration) (string, error) {
	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(validityDuration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and checks it was issued for purpose.
func (s *Signer) ParseToken(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}

	return claims, nil
}
