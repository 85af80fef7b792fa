package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned by a Store when no data is kept for a token
var ErrSessionNotFound = errors.New("session not found")

// Identity is the authenticated user bound to a session
type Identity struct {
	UserID          int64  `json:"user_id"`
	Username        string `json:"username"`
	IsBusinessOwner bool   `json:"is_business_owner"`
}

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Data is everything stored server-side for one client
type Data struct {
	Identity *Identity `json:"identity,omitempty"`
	Flashes  []Flash   `json:"flashes,omitempty"`
}

// Store keeps session data keyed by an opaque token
type Store interface {
	Get(ctx context.Context, token string) (*Data, error)
	Set(ctx context.Context, token string, data *Data) error
	Delete(ctx context.Context, token string) error
}

// AnonymousTTL caps how long flashes queued for a client without an identity are kept
const AnonymousTTL = 10 * time.Minute

// expiryFor returns the lifetime of an entry given the store's configured ttl.
// Zero means no expiry.
func expiryFor(ttl time.Duration, data *Data) time.Duration {
	if data.Identity == nil && (ttl == 0 || ttl > AnonymousTTL) {
		return AnonymousTTL
	}
	return ttl
}
