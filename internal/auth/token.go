package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens issues and verifies stateless HS256 session tokens. The email
// of the authenticated account travels as the subject claim; nothing is
// stored server-side, so a token remains usable until its expiry even
// after logout.
type Tokens struct {
	// Secret is the HMAC signing key shared by issuer and verifier.
	Secret string

	// TTL is the validity window stamped into each issued token.
	TTL time.Duration
}

// NewTokens creates a token issuer/verifier with the given signing
// secret and time-to-live.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{Secret: secret, TTL: ttl}
}

// Issue creates a signed token for the given account email, expiring
// TTL from now.
func (t *Tokens) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks a presented token and returns the subject email.
//
// Failures map onto exactly three sentinels, checked in order: an empty
// string is ErrTokenMissing; a token that fails parsing, algorithm, or
// signature checks is ErrTokenInvalid; a correctly signed token past its
// expiry is ErrTokenExpired. An expired token is never reported as
// invalid — the library verifies the signature before the claims, so
// reaching the expiry check implies the signature held.
func (t *Tokens) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(t.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
