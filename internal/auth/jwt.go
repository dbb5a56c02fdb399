// Package auth issues and verifies access tokens and refresh tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

// TokenManager signs HS256 access tokens and generates refresh tokens.
type TokenManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewTokenManager creates a token manager. secret must be at least 32
// characters; config validation enforces it.
func NewTokenManager(secret, issuer string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// IssueAccess creates a signed access token for id.
func (m *TokenManager) IssueAccess(id Identity) (AccessToken, error) {
	now := m.now()
	exp := now.Add(m.accessTTL)
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: id.Role.String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Token: signed, ExpiresAt: exp.UTC()}, nil
}

// Verify parses and validates an access token. Every failure wraps
// domain.ErrUnauthorized.
func (m *TokenManager) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, fmt.Errorf("%w: empty token", domain.ErrUnauthorized)
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: invalid subject", domain.ErrUnauthorized)
	}

	role := domain.UserRole(c.Role)
	if !role.IsValid() {
		return Identity{}, errors.Join(domain.ErrUnauthorized, fmt.Errorf("invalid role %q", c.Role))
	}
	return Identity{UserID: userID, Role: role}, nil
}

// NewRefreshToken returns a random refresh token for the client and its
// hash for storage.
func NewRefreshToken() (raw, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, HashToken(raw), nil
}

// HashToken returns the hex SHA-256 of a refresh token.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
