package service

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bizdir/internal/auth"
	"bizdir/internal/database/dbtest"
	"bizdir/internal/models"
	"bizdir/internal/repository"
)

func validRegistration() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		IsBusinessOwner: true,
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotZero(t, created.UserID)
	assert.Equal(t, "alice", created.Username)
	assert.True(t, created.IsBusinessOwner)

	sess := newTestSession(t)
	// Registration does not log in
	assert.Nil(t, sess.Current())

	identity, err := svc.Login(ctx, sess, &models.LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, created.UserID, identity.UserID)

	current := sess.Current()
	require.NotNil(t, current)
	assert.Equal(t, created.UserID, current.UserID)
	assert.Equal(t, "alice", current.Username)
	assert.True(t, current.IsBusinessOwner)
}

func TestAuthService_RegisterStoresDigest(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	user, err := svc.Profile(ctx, created.UserID)
	require.NoError(t, err)
	expected, _ := auth.NewSHA256Hasher().Hash("s3cret")
	assert.Equal(t, expected, user.PasswordHash)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestAuthService(t)

	testCases := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		message string
	}{
		{"missing username", func(r *models.RegisterRequest) { r.Username = "" }, "All fields are required"},
		{"missing email", func(r *models.RegisterRequest) { r.Email = "" }, "All fields are required"},
		{"missing password", func(r *models.RegisterRequest) { r.Password = "" }, "All fields are required"},
		{"missing confirmation", func(r *models.RegisterRequest) { r.ConfirmPassword = "" }, "All fields are required"},
		{"mismatch", func(r *models.RegisterRequest) { r.ConfirmPassword = "other" }, "Passwords do not match"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegistration()
			tc.mutate(req)

			_, err := svc.Register(context.Background(), req)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tc.message, validationErr.Message)
		})
	}
}

func TestAuthService_RegisterOverlongBcryptPassword(t *testing.T) {
	db := dbtest.New(t)
	svc := NewAuthService(repository.NewUserRepository(db), auth.NewBcryptHasherWithCost(bcrypt.MinCost), zerolog.Nop())

	req := validRegistration()
	req.Password = strings.Repeat("x", auth.MaxBcryptPasswordLength+1)
	req.ConfirmPassword = req.Password

	_, err := svc.Register(context.Background(), req)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "got %v", err)
	assert.Equal(t, "Password is too long", validationErr.Message)

	_, err = svc.Profile(context.Background(), 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	sameUsername := validRegistration()
	sameUsername.Email = "other@example.com"
	_, err = svc.Register(ctx, sameUsername)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	sameEmail := validRegistration()
	sameEmail.Username = "bob"
	_, err = svc.Register(ctx, sameEmail)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// Matching is case-sensitive
	otherCase := validRegistration()
	otherCase.Username = "Alice"
	otherCase.Email = "Alice@example.com"
	_, err = svc.Register(ctx, otherCase)
	assert.NoError(t, err)
}

func TestAuthService_RegisterRaceReportsDuplicate(t *testing.T) {
	// The pre-check passes but the insert hits the unique constraint
	repo := &failingUserRepo{lookups: true, createErr: errors.Wrap(repository.ErrDuplicate, "failed to create user")}
	svc := NewAuthService(repo, auth.NewSHA256Hasher(), zerolog.Nop())

	_, err := svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestAuthService_RegisterStoreError(t *testing.T) {
	svc := NewAuthService(&failingUserRepo{}, auth.NewSHA256Hasher(), zerolog.Nop())
	_, err := svc.Register(context.Background(), validRegistration())

	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr), "got %v", err)
	assert.ErrorIs(t, err, errStoreDown)

	svc = NewAuthService(&failingUserRepo{lookups: true, createErr: errStoreDown}, auth.NewSHA256Hasher(), zerolog.Nop())
	_, err = svc.Register(context.Background(), validRegistration())
	assert.True(t, errors.As(err, &storeErr), "got %v", err)
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	wrongPassword := newTestSession(t)
	_, errWrong := svc.Login(ctx, wrongPassword, &models.LoginRequest{Username: "john_doe", Password: "nope"})

	unknownUser := newTestSession(t)
	_, errUnknown := svc.Login(ctx, unknownUser, &models.LoginRequest{Username: "ghost", Password: "nope"})

	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrong, errUnknown)
	assert.Nil(t, wrongPassword.Current())
	assert.Nil(t, unknownUser.Current())
}

func TestAuthService_LoginSeededUsers(t *testing.T) {
	svc := newTestAuthService(t)

	sess := newTestSession(t)
	identity, err := svc.Login(context.Background(), sess, &models.LoginRequest{Username: "business_owner", Password: "owner123"})
	require.NoError(t, err)
	assert.True(t, identity.IsBusinessOwner)
	assert.Equal(t, "business_owner", sess.Current().Username)
}

func TestAuthService_LoginValidation(t *testing.T) {
	svc := newTestAuthService(t)

	for _, req := range []*models.LoginRequest{
		{Username: "", Password: "password123"},
		{Username: "john_doe", Password: ""},
	} {
		_, err := svc.Login(context.Background(), newTestSession(t), req)

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr), "got %v", err)
		assert.Equal(t, "Both username and password are required", validationErr.Message)
	}
}

func TestAuthService_LoginStoreErrors(t *testing.T) {
	svc := NewAuthService(&failingUserRepo{}, auth.NewSHA256Hasher(), zerolog.Nop())
	_, err := svc.Login(context.Background(), newTestSession(t), &models.LoginRequest{Username: "john_doe", Password: "password123"})

	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr), "got %v", err)

	svc = newTestAuthService(t)
	_, err = svc.Login(context.Background(), brokenSession{}, &models.LoginRequest{Username: "john_doe", Password: "password123"})
	assert.True(t, errors.As(err, &storeErr), "got %v", err)
}

func TestAuthService_Logout(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	sess := newTestSession(t)
	_, err := svc.Login(ctx, sess, &models.LoginRequest{Username: "john_doe", Password: "password123"})
	require.NoError(t, err)

	svc.Logout(ctx, sess)
	assert.Nil(t, sess.Current())

	// Idempotent, and store failures are swallowed
	svc.Logout(ctx, sess)
	svc.Logout(ctx, brokenSession{})
}

func TestAuthService_Profile(t *testing.T) {
	svc := newTestAuthService(t)

	user, err := svc.Profile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "john_doe", user.Username)

	_, err = svc.Profile(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	svc = NewAuthService(&failingUserRepo{}, auth.NewSHA256Hasher(), zerolog.Nop())
	_, err = svc.Profile(context.Background(), 1)
	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr), "got %v", err)
}
