package deadletter

import (
	"context"
	"sync"

	"github.com/dmitrymomot/hookrelay/pkg/relay"
)

// MemoryStore keeps the most recent dead letters in process memory.
type MemoryStore struct {
	mu         sync.Mutex
	entries    []Entry // ring buffer
	next       int
	full       bool
	maxEntries int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &MemoryStore{
		entries:    make([]Entry, o.maxEntries),
		maxEntries: o.maxEntries,
	}
}

func (s *MemoryStore) Record(_ context.Context, dl relay.DeadLetter) error {
	e := NewEntry(dl)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.next] = e
	s.next = (s.next + 1) % s.maxEntries
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.next
	if s.full {
		size = s.maxEntries
	}
	n := min(limit, size)

	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (s.next - i + s.maxEntries) % s.maxEntries
		out = append(out, s.entries[idx])
	}
	return out, nil
}
