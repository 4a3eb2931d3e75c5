package friend

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"

	"shopping-list-api/internal/domain/user"
	"shopping-list-api/pkg/pagination"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, link *Link) error
	// FindBetween returns the link between a and b in either orientation.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*Link, error)
	Accept(ctx context.Context, linkID uuid.UUID) error
	// DeleteWithShares removes the link and every share between its two users
	// in one transaction.
	DeleteWithShares(ctx context.Context, link *Link) error
	ListFriends(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]*user.User, int64, error)
	ListIncomingRequests(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]*user.User, int64, error)
}
