// Package revocation stores logged-out tokens until they expire.
//
// Tokens are keyed by their SHA-256 digest, so neither store keeps usable credentials.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// MemoryStore keeps revocations for the lifetime of the process. It is only correct
// for single-instance deployments; use RedisStore otherwise.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time // digest -> expiry, zero means forever
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

// Revoke is idempotent. Revoking again extends the retention to the later expiry.
func (s *MemoryStore) Revoke(_ context.Context, token string, until time.Time) error {
	key := digest(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.entries[key]
	switch {
	case !exists:
		s.entries[key] = until
	case current.IsZero():
	case until.IsZero() || until.After(current):
		s.entries[key] = until
	}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, revoked := s.entries[digest(token)]
	return revoked, nil
}

// PurgeExpired drops entries whose token expired before now and returns how many
// were removed. Those tokens fail verification on their own.
func (s *MemoryStore) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, until := range s.entries {
		if !until.IsZero() && until.Before(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
