package ports

import (
	"context"
	"time"
)

// PasswordVerifier checks a raw password against a stored encoding. Implementations
// decide which encodings they understand; unknown ones simply do not match.
type PasswordVerifier interface {
	Matches(raw, encoded string) bool
}

// PasswordHasher encodes new passwords.
type PasswordHasher interface {
	Hash(raw string) (string, error)
}

// TokenIssuer signs and verifies bearer tokens.
//
// Verification never errors outward: any malformed, tampered, expired or foreign token
// simply fails.
type TokenIssuer interface {
	Issue(subject string, claims map[string]any, ttl time.Duration) (string, error)
	Verify(token, expectedSubject string) bool

	// Subject returns the verified subject, or false when the token does not verify.
	Subject(token string) (string, bool)

	// ExtractClaim returns a claim of a verified token.
	ExtractClaim(token, name string) (any, error)

	// ExpiresAt reads the expiry without verifying the signature. It is only meant to
	// bound how long a revoked token needs to be remembered.
	ExpiresAt(token string) (time.Time, bool)
}

// RevocationStore remembers logged-out tokens.
type RevocationStore interface {
	// Revoke is idempotent. until is when the token expires anyway; the zero time keeps
	// the entry for the lifetime of the store.
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
