// Package jwt signs and verifies the session cookie value.
package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var ErrInvalidToken = errors.New("invalid session token")

// JWTService issues HS256 tokens whose subject is an opaque session id
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a token service. A zero ttl issues tokens without expiry.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateToken signs the session id
func (s *JWTService) GenerateToken(sessionID string) (string, error) {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		Subject:  sessionID,
		IssuedAt: jwtlib.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwtlib.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return token, nil
}

// ValidateToken verifies the signature and expiry and returns the session id
func (s *JWTService) ValidateToken(tokenString string) (string, error) {
	var claims jwtlib.RegisteredClaims
	token, err := jwtlib.ParseWithClaims(tokenString, &claims, func(token *jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// TTL is the configured token lifetime, zero when tokens do not expire
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}
