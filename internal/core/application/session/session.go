// Package session implements login, logout, token validation and refresh on top of
// the token issuer, the password verifier and the revocation store.
//
// Tokens are stateless: a logged-out token stays cryptographically valid until it
// expires, so every validation consults the revocation store first.
package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

const (
	TokenType = "Bearer"

	ClaimRole   = "role"
	ClaimUserID = "uid"
)

var (
	ErrInactiveUser        = errs.NewBusinessRuleViolationError("inactive user")
	ErrInvalidRefreshToken = errs.NewBusinessRuleViolationError("invalid refresh token")
	ErrInvalidCredentials  = errs.NewUnauthorizedError("invalid credentials")
	ErrInvalidToken        = errs.NewUnauthorizedError("invalid or expired token")
)

// UserReader is the read side of the user store the orchestrator needs.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// Config holds token lifetimes.
type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig issues one-hour access tokens and one-day refresh tokens.
func DefaultConfig() Config {
	return Config{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour}
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   kernel.UUID
	Username string
	Role     user.Role
}

// IsStaff reports whether the caller may act on any shipment.
func (p Principal) IsStaff() bool {
	return p.Role.IsStaff()
}

// LoginResult is returned by Login.
type LoginResult struct {
	Token        string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
	User         *user.User
}

// RefreshResult carries a new access token; the refresh token is handed back unchanged.
type RefreshResult struct {
	Token        string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
	User         *user.User
}

type Service struct {
	users     UserReader
	passwords ports.PasswordVerifier
	tokens    ports.TokenIssuer
	revoked   ports.RevocationStore
	cfg       Config
	now       func() time.Time
	logger    *slog.Logger
}

func NewService(
	users UserReader,
	passwords ports.PasswordVerifier,
	tokens ports.TokenIssuer,
	revoked ports.RevocationStore,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		revoked:   revoked,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.With("component", "session"),
	}
}

// Login checks, in this order, that the user exists (ObjectNotFoundError), is active
// (ErrInactiveUser) and that the password matches (ErrInvalidCredentials).
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}

	if !u.IsActive() {
		return LoginResult{}, ErrInactiveUser
	}

	if !s.passwords.Matches(password, u.PasswordHash()) {
		s.logger.WarnContext(ctx, "Rejected login", "username", username, "reason", "password mismatch")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueAccess(u)
	if err != nil {
		return LoginResult{}, err
	}

	refresh, err := s.tokens.Issue(u.Username(), map[string]any{ClaimUserID: u.ID().String()}, s.cfg.RefreshTTL)
	if err != nil {
		return LoginResult{}, err
	}

	s.logger.InfoContext(ctx, "User logged in", "username", u.Username(), "role", u.Role().String())
	return LoginResult{
		Token:        token,
		RefreshToken: refresh,
		TokenType:    TokenType,
		ExpiresIn:    s.cfg.AccessTTL,
		User:         u,
	}, nil
}

// Logout revokes the token until it would have expired anyway. It does not check the
// token, so logging out twice or with garbage succeeds. Blank tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	until, ok := s.tokens.ExpiresAt(token)
	if !ok {
		// unreadable expiry: no token we issued outlives a refresh token
		until = s.now().Add(s.cfg.RefreshTTL)
	}

	return s.revoked.Revoke(ctx, token, until)
}

// ValidateToken reports whether token is a live, non-revoked token of an existing user.
func (s *Service) ValidateToken(ctx context.Context, token string) bool {
	_, ok := s.check(ctx, token)
	return ok
}

// RefreshToken issues a new access token for a valid refresh token. The old token is
// not revoked and keeps working until it expires.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (RefreshResult, error) {
	u, ok := s.check(ctx, refreshToken)
	if !ok {
		return RefreshResult{}, ErrInvalidRefreshToken
	}

	token, err := s.issueAccess(u)
	if err != nil {
		return RefreshResult{}, err
	}

	return RefreshResult{
		Token:        token,
		RefreshToken: refreshToken,
		TokenType:    TokenType,
		ExpiresIn:    s.cfg.AccessTTL,
		User:         u,
	}, nil
}

// Authenticate resolves a bearer token to its principal. The role comes from the
// user store, not from the token, so role changes apply immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (Principal, error) {
	u, ok := s.check(ctx, token)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	if !u.IsActive() {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: u.ID(), Username: u.Username(), Role: u.Role()}, nil
}

func (s *Service) issueAccess(u *user.User) (string, error) {
	claims := map[string]any{
		ClaimRole:   u.Role().String(),
		ClaimUserID: u.ID().String(),
	}
	return s.tokens.Issue(u.Username(), claims, s.cfg.AccessTTL)
}

// check runs the validation sequence: blank, revoked, subject, user exists, signature
// and expiry. Store failures count as invalid.
func (s *Service) check(ctx context.Context, token string) (*user.User, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}

	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "Revocation lookup failed", "error", err)
		return nil, false
	}
	if revoked {
		return nil, false
	}

	subject, ok := s.tokens.Subject(token)
	if !ok {
		return nil, false
	}

	u, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		return nil, false
	}

	if !s.tokens.Verify(token, u.Username()) {
		return nil, false
	}
	return u, true
}
