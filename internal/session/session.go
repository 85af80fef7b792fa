// Package session tracks per-client authenticated identity behind opaque tokens.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Manager binds clients to their stored session data
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load returns the session for token. An empty, unknown or expired token yields an
// anonymous session. issue is called with a fresh token whenever one is minted, and
// with "" when the session is destroyed, so the caller can update the client.
func (m *Manager) Load(ctx context.Context, token string, issue func(token string)) (*Session, error) {
	s := &Session{store: m.store, issue: issue}
	if token == "" {
		return s, nil
	}

	data, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	s.token = token
	s.data = *data
	return s, nil
}

// Session is one client's view of its stored data
type Session struct {
	store Store
	issue func(token string)
	token string
	data  Data
}

// Token is the current opaque token, empty until something has been stored
func (s *Session) Token() string {
	return s.token
}

// Current returns the authenticated identity, or nil for anonymous clients
func (s *Session) Current() *Identity {
	if s.data.Identity == nil {
		return nil
	}
	identity := *s.data.Identity
	return &identity
}

// Establish binds identity to the client under a newly issued token. Pending flashes are kept.
func (s *Session) Establish(ctx context.Context, identity Identity) error {
	if s.token != "" {
		if err := s.store.Delete(ctx, s.token); err != nil {
			return err
		}
		s.token = ""
	}

	s.data.Identity = &identity
	return s.save(ctx)
}

// Clear destroys the stored session. Clearing an anonymous session is a no-op.
func (s *Session) Clear(ctx context.Context) error {
	s.data = Data{}
	return s.discard(ctx)
}

// discard deletes the stored entry and tells the client to drop its token
func (s *Session) discard(ctx context.Context) error {
	if s.token == "" {
		return nil
	}

	token := s.token
	s.token = ""
	if s.issue != nil {
		s.issue("")
	}
	return s.store.Delete(ctx, token)
}

// AddFlash queues a message for the next rendered page
func (s *Session) AddFlash(ctx context.Context, category, message string) error {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	return s.save(ctx)
}

// Flashes returns and removes all queued messages
func (s *Session) Flashes(ctx context.Context) ([]Flash, error) {
	if len(s.data.Flashes) == 0 {
		return nil, nil
	}

	flashes := s.data.Flashes
	s.data.Flashes = nil
	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (s *Session) save(ctx context.Context) error {
	// Nothing worth keeping for an anonymous client with no pending flashes
	if s.data.Identity == nil && len(s.data.Flashes) == 0 {
		return s.discard(ctx)
	}

	if s.token == "" {
		s.token = uuid.NewString()
		if s.issue != nil {
			s.issue(s.token)
		}
	}
	return s.store.Set(ctx, s.token, &s.data)
}
