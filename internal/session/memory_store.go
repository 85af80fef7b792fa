package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      Data
	expiresAt time.Time // zero means no expiry
}

// memoryStore keeps sessions in process memory. Used when Redis is not available.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
	writes   int
}

// sweepInterval is how many writes pass between scans for expired entries
const sweepInterval = 256

// NewMemoryStore creates an in-process store. A zero ttl keeps authenticated sessions until deleted.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *memoryStore) Get(ctx context.Context, token string) (*Data, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	data := copyData(entry.data)
	return &data, nil
}

func (s *memoryStore) Set(ctx context.Context, token string, data *Data) error {
	entry := memoryEntry{data: copyData(*data)}
	if ttl := expiryFor(s.ttl, data); ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.sessions[token] = entry
	s.writes++
	if s.writes%sweepInterval == 0 {
		s.sweepLocked()
	}
	s.mu.Unlock()
	return nil
}

// sweepLocked drops expired entries that were never read again. Caller holds mu.
func (s *memoryStore) sweepLocked() {
	now := s.now()
	for token, entry := range s.sessions {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *memoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func copyData(d Data) Data {
	out := Data{}
	if d.Identity != nil {
		identity := *d.Identity
		out.Identity = &identity
	}
	if len(d.Flashes) > 0 {
		out.Flashes = append([]Flash(nil), d.Flashes...)
	}
	return out
}
