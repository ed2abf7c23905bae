// Package auth issues and verifies the HS256 session tokens handed out by POST /jwt.
package auth

import (
	"errors"
	"fmt"
	"time"

	"service-parcel/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the claim set of a token: whatever the client sent to /jwt plus iat and exp.
type Identity map[string]any

// Email returns the "email" claim, or "" when it is missing or not a string.
func (id Identity) Email() string {
	s, _ := id["email"].(string)
	return s
}

// TokenService signs and checks tokens with one shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. ttl <= 0 falls back to one hour.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must be provided")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs identity. Client-supplied iat and exp are overwritten.
func (s *TokenService) Issue(identity Identity) (string, error) {
	now := s.now()
	claims := make(jwt.MapClaims, len(identity)+2)
	for k, v := range identity {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the claims.
// Every failure wraps apperr.ErrUnauthorized.
func (s *TokenService) Verify(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}
	return Identity(claims), nil
}
