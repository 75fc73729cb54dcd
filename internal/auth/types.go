package auth

import (
	"errors"
	"regexp"
	"time"
)

// emailPattern is a pragmatic format check: one @, no spaces, a dot in
// the domain. Full RFC 5322 validation is not worth the complexity here;
// the mailbox is only ever used as an identity key.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxEmailLength caps stored addresses well above any realistic mailbox.
const maxEmailLength = 254

// IsValidEmail checks if an email address meets format requirements.
func IsValidEmail(email string) bool {
	return email != "" && len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// Identity represents a registered account.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	RoleID       int       `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sentinel errors for authentication and credential storage.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two cases in responses.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidEmail indicates a registration with a malformed address.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword indicates a registration with an empty password.
	ErrWeakPassword = errors.New("password must not be empty")

	// ErrEmailExists indicates a registration against an email that is
	// already taken.
	ErrEmailExists = errors.New("email already registered")

	// ErrIdentityNotFound indicates the requested account does not exist.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrTokenMissing indicates no token was presented.
	ErrTokenMissing = errors.New("token is missing")

	// ErrTokenExpired indicates a well-formed, correctly signed token
	// whose validity window has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid indicates a malformed token, a bad signature, or an
	// unexpected signing algorithm.
	ErrTokenInvalid = errors.New("invalid token")
)
