package share

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"

	"shopping-list-api/internal/domain/shoppinglist"
	"shopping-list-api/pkg/pagination"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, grant *Grant) error
	// ExistsBetween reports a grant on listID between a and b in either orientation.
	ExistsBetween(ctx context.Context, listID, a, b uuid.UUID) (bool, error)
	IsParticipant(ctx context.Context, listID, userID uuid.UUID) (bool, error)
	DeleteBetween(ctx context.Context, listID, a, b uuid.UUID) (int64, error)
	DeleteAllForParticipant(ctx context.Context, listID, userID uuid.UUID) (int64, error)
	// ListSharedWith returns lists userID participates in through a grant and
	// does not own, ordered by name.
	ListSharedWith(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]*shoppinglist.ShoppingList, int64, error)
}
