package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"bizdir/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string, isBusinessOwner bool) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_business_owner, created_at`

// Create inserts a new user. A unique constraint failure is reported as ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, username, email, passwordHash string, isBusinessOwner bool) (*entities.User, error) {
	query := r.db.Rebind(`
		INSERT INTO users (username, email, password_hash, is_business_owner, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	user := entities.User{
		Username:        username,
		Email:           email,
		PasswordHash:    passwordHash,
		IsBusinessOwner: isBusinessOwner,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}

	err := r.db.QueryRowxContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsBusinessOwner,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Wrap(ErrDuplicate, "failed to create user")
		}
		return nil, errors.Wrap(err, "failed to create user")
	}

	return &user, nil
}

// FindByUsername finds a user by exact username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	return r.findOne(ctx, query, username)
}

// FindByUsernameOrEmail returns the first user holding either the username or the email
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ? LIMIT 1`)
	return r.findOne(ctx, query, username, email)
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return r.findOne(ctx, query, id)
}

func (r *userRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var user entities.User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return &user, nil
}
