package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/arifwid/kantorku/internal/infrastructure/logging"
)

// defaultRoleID is assigned to self-registered accounts.
const defaultRoleID = 1

// dummyHash is compared against when login targets an unknown email, so
// the miss costs roughly the same as a real bcrypt verification.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("kantorku-timing-pad"), bcrypt.MinCost) //nolint:errcheck // static input cannot fail

// Service coordinates registration, login, and token verification.
type Service struct {
	repo       IdentityRepository
	tokens     *Tokens
	bcryptCost int
	logger     *logging.Logger
}

// NewService creates an authentication service.
func NewService(repo IdentityRepository, tokens *Tokens, bcryptCost int, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.With("component", "auth"),
	}
}

// Register validates the email and password, hashes the password, and
// stores a new account. A duplicate email returns ErrEmailExists; under
// concurrent registration of the same address the database's unique
// constraint guarantees exactly one caller succeeds.
func (s *Service) Register(ctx context.Context, email, password string) (*Identity, error) {
	if !IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrWeakPassword
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	identity := &Identity{
		Email:        email,
		PasswordHash: hash,
		RoleID:       defaultRoleID,
	}
	if err := s.repo.Create(ctx, identity); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("storing identity: %w", err)
	}

	s.logger.Info("account registered", "email", email, "id", identity.ID)
	return identity, nil
}

// Login verifies the credentials and issues a session token. Unknown
// email and wrong password are indistinguishable to the caller; both
// return ErrInvalidCredentials. Storage failures surface separately so
// the API can respond 500 rather than blaming the credentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Identity, error) {
	identity, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			// Burn comparable time on a miss so response latency does
			// not reveal whether the email exists.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password)) //nolint:errcheck // result is discarded
			s.logger.Info("login failed", "email", email, "reason", "unknown email")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("looking up identity: %w", err)
	}

	if !VerifyPassword(password, identity.PasswordHash) {
		s.logger.Info("login failed", "email", email, "reason", "wrong password")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(identity.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("login succeeded", "email", email)
	return token, identity, nil
}

// Authenticate verifies a presented session token and returns the
// subject email. Purely stateless: no database lookup happens, so a
// token stays valid until expiry even if the account has since been
// deleted.
func (s *Service) Authenticate(_ context.Context, tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}

// TokenTTL exposes the session validity window so the HTTP layer can
// align cookie lifetimes with token expiry.
func (s *Service) TokenTTL() time.Duration {
	return s.tokens.TTL
}
