package user

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"shopping-list-api/pkg/pagination"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	// Delete removes the user together with their lists, items, friend links and shares.
	Delete(ctx context.Context, userID uuid.UUID) error
	// Search returns non-admin users other than excludeID, ordered by username.
	Search(ctx context.Context, excludeID uuid.UUID, params pagination.Params) ([]*User, int64, error)
	AdminExists(ctx context.Context) (bool, error)

	// SavePasswordResetToken replaces any existing token for the same email.
	SavePasswordResetToken(ctx context.Context, token *PasswordResetToken) error
	GetPasswordResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	DeletePasswordResetToken(ctx context.Context, tokenID uuid.UUID) error
	DeleteExpiredResetTokens(ctx context.Context, olderThan time.Duration) (int64, error)
}
