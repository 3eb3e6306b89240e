package cache

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/trivia/internal/quiz"
)

// DefaultTTL is how long a generated quiz is reused.
const DefaultTTL = 10 * time.Minute

type memEntry struct {
	quiz    *quiz.Quiz
	expires time.Time
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Key]memEntry
}

// MemoryOption customizes a Memory cache.
type MemoryOption func(*Memory)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates a cache whose entries live for ttl. A ttl of zero
// keeps entries until they are overwritten.
func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Key]memEntry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key Key) (*quiz.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	return Clone(e.quiz), nil
}

func (m *Memory) Put(_ context.Context, key Key, q *quiz.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memEntry{quiz: Clone(q)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.entries[key] = e
	m.sweep()
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// sweep drops expired entries. Caller holds mu.
func (m *Memory) sweep() {
	now := m.now()
	for k, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}
