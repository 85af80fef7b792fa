package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"bizdir/internal/auth"
	"bizdir/internal/database/dbtest"
	"bizdir/internal/entities"
	"bizdir/internal/repository"
	"bizdir/internal/session"
)

var errStoreDown = errors.New("database is locked")

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(dbtest.New(t)), auth.NewSHA256Hasher(), zerolog.Nop())
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.NewManager(session.NewMemoryStore(0)).Load(context.Background(), "", nil)
	require.NoError(t, err)
	return s
}

// failingUserRepo fails every call, or only Create when lookups is true
type failingUserRepo struct {
	lookups   bool
	createErr error
}

func (r *failingUserRepo) Create(ctx context.Context, username, email, passwordHash string, isBusinessOwner bool) (*entities.User, error) {
	return nil, r.createErr
}

func (r *failingUserRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return nil, errStoreDown
}

func (r *failingUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error) {
	if r.lookups {
		return nil, repository.ErrNotFound
	}
	return nil, errStoreDown
}

func (r *failingUserRepo) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	return nil, errStoreDown
}

// brokenSession cannot be written
type brokenSession struct{}

func (brokenSession) Establish(ctx context.Context, identity session.Identity) error { return errStoreDown }
func (brokenSession) Current() *session.Identity                                     { return nil }
func (brokenSession) Clear(ctx context.Context) error                                 { return errStoreDown }
