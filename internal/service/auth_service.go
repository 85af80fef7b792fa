package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"bizdir/internal/auth"
	"bizdir/internal/entities"
	"bizdir/internal/models"
	"bizdir/internal/repository"
	"bizdir/internal/session"
)

var validate = validator.New()

// SessionHandle is the per-client session the auth service reads and writes
type SessionHandle interface {
	Establish(ctx context.Context, identity session.Identity) error
	Current() *session.Identity
	Clear(ctx context.Context) error
}

// AuthService defines the interface for registration and login
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, sess SessionHandle, req *models.LoginRequest) (*session.Identity, error)
	Logout(ctx context.Context, sess SessionHandle)
	Profile(ctx context.Context, userID int64) (*entities.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	hasher    auth.PasswordHasher
	dummyHash string
	log       zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, log zerolog.Logger) AuthService {
	// Checked against when the username is unknown so both failure paths hash once
	dummyHash, _ := hasher.Hash("not-a-real-password")

	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		dummyHash: dummyHash,
		log:       log,
	}
}

// Register creates a new user account. It does not log the user in.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	// Check if username or email is already taken
	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateUser
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error().Err(err).Str("username", req.Username).Msg("failed to check existing user")
		return nil, &StoreError{Op: "register", Err: err}
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, &ValidationError{Message: "Password is too long"}
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user, err := s.userRepo.Create(ctx, req.Username, req.Email, passwordHash, req.IsBusinessOwner)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a race with a concurrent registration
		return nil, ErrDuplicateUser
	}
	if err != nil {
		s.log.Error().Err(err).Str("username", req.Username).Msg("failed to create user")
		return nil, &StoreError{Op: "register", Err: err}
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return &models.RegisterResponse{
		Message:         "Registration successful! You can now log in.",
		UserID:          user.ID,
		Username:        user.Username,
		Email:           user.Email,
		IsBusinessOwner: user.IsBusinessOwner,
		CreatedAt:       user.CreatedAt,
	}, nil
}

// Login verifies credentials and binds the user to sess
func (s *authService) Login(ctx context.Context, sess SessionHandle, req *models.LoginRequest) (*session.Identity, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &ValidationError{Message: "Both username and password are required"}
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		s.hasher.Check(req.Password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error().Err(err).Str("username", req.Username).Msg("failed to look up user")
		return nil, &StoreError{Op: "login", Err: err}
	}

	if !s.hasher.Check(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	identity := session.Identity{
		UserID:          user.ID,
		Username:        user.Username,
		IsBusinessOwner: user.IsBusinessOwner,
	}
	if err := sess.Establish(ctx, identity); err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to establish session")
		return nil, &StoreError{Op: "login", Err: err}
	}

	return &identity, nil
}

// Logout destroys the session. It never fails; store errors are only logged.
func (s *authService) Logout(ctx context.Context, sess SessionHandle) {
	if err := sess.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete session")
	}
}

// Profile loads the account behind an authenticated session
func (s *authService) Profile(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "profile", Err: err}
	}
	return user, nil
}

func validateRegistration(req *models.RegisterRequest) error {
	err := validate.Struct(req)
	if err == nil {
		if req.Password != req.ConfirmPassword {
			return &ValidationError{Message: "Passwords do not match"}
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return &ValidationError{Message: "All fields are required"}
	}
	return errors.Wrap(err, "failed to validate registration")
}
