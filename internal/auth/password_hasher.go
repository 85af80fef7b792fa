// Package auth provides password hashing for stored credentials.
package auth

import "github.com/pkg/errors"

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// MaxBcryptPasswordLength is the longest password, in bytes, bcrypt accepts
const MaxBcryptPasswordLength = 72

// ErrPasswordTooLong is returned by Hash when the scheme cannot digest the whole password
var ErrPasswordTooLong = errors.New("password too long")

// PasswordHasher turns plaintext passwords into stored digests and verifies them.
type PasswordHasher interface {
	// Hash generates the digest stored for a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored digest.
	Check(password, hash string) bool
}

// NewPasswordHasher returns the hasher for the configured scheme.
func NewPasswordHasher(scheme string, bcryptCost int) (PasswordHasher, error) {
	switch scheme {
	case SchemeSHA256, "":
		return NewSHA256Hasher(), nil
	case SchemeBcrypt:
		return NewBcryptHasherWithCost(bcryptCost), nil
	default:
		return nil, errors.Errorf("unknown password hasher %q", scheme)
	}
}
