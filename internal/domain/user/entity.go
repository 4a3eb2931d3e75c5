package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user entity in the domain
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHashed string
	Admin          bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PasswordResetToken is the single active reset token for an email address.
type PasswordResetToken struct {
	ID        uuid.UUID
	Email     string
	Token     string
	CreatedAt time.Time
}

// IsExpired reports whether the token is older than ttl.
func (t *PasswordResetToken) IsExpired(ttl time.Duration) bool {
	return time.Since(t.CreatedAt) > ttl
}
