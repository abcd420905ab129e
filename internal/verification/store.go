// Package verification issues and checks short-lived, single-use registration codes.
package verification

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute

// Store issues and consumes verification codes keyed by an identity string (normalized email).
//
// Implementations are atomic per key: issue overwrites any earlier code, and of two
// concurrent Verify calls with the correct code exactly one returns true.
type Store interface {
	// Issue generates a new code for key, replacing any live one, and returns it.
	Issue(ctx context.Context, key string) (string, error)
	// Verify reports whether candidate matches the live code for key. A match consumes the code.
	// Missing and expired entries return false; an expired entry is removed.
	Verify(ctx context.Context, key, candidate string) (bool, error)
}

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Expired entries are removed lazily when accessed.
type MemoryStore struct {
	mu      sync.Mutex
	m       map[string]entry
	ttl     time.Duration
	nowF    func() time.Time
	newCode func() (string, error)
}

// NewMemoryStore returns an in-memory store whose codes live for ttl (DefaultTTL if ttl <= 0).
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		m:       make(map[string]entry),
		ttl:     ttl,
		nowF:    func() time.Time { return time.Now().UTC() },
		newCode: GenerateCode,
	}
}

// Issue generates a code for key valid until now+ttl.
func (s *MemoryStore) Issue(ctx context.Context, key string) (string, error) {
	code, err := s.newCode()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = entry{code: code, expiresAt: s.nowF().Add(s.ttl)}
	return code, nil
}

// Verify checks candidate against the live code for key and consumes it on success.
// Load, expiry check, compare and remove happen under one lock.
func (s *MemoryStore) Verify(ctx context.Context, key, candidate string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if !ok {
		return false, nil
	}
	if !e.expiresAt.After(s.nowF()) {
		delete(s.m, key)
		return false, nil
	}
	if !codeEqual(e.code, candidate) {
		return false, nil
	}
	delete(s.m, key)
	return true, nil
}

// Len returns the number of stored entries, including expired ones not yet accessed.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
