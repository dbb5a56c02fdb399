package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

// Identity is the authenticated principal carried by an access token.
type Identity struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

// IsAdmin reports whether the identity has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role.IsAdmin()
}

// AccessToken is a signed access token and its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
