package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// sha256Hasher produces unsalted hex digests, compatible with the digests already stored
// by the legacy application. Prefer bcrypt for new deployments.
type sha256Hasher struct{}

func NewSHA256Hasher() PasswordHasher {
	return &sha256Hasher{}
}

// Hash never fails; the 64 character digest depends only on the input.
func (h *sha256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h *sha256Hasher) Check(password, hash string) bool {
	digest, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}
