package shoppinglist

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"

	"shopping-list-api/pkg/pagination"

	"github.com/google/uuid"
)

type ListRepository interface {
	Create(ctx context.Context, list *ShoppingList) error
	GetByID(ctx context.Context, listID uuid.UUID) (*ShoppingList, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params pagination.Params) ([]*ShoppingList, int64, error)
	// NameTaken reports another list of ownerID with the same name, ignoring case.
	NameTaken(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, list *ShoppingList) error
	// Delete removes the list with its items and share grants in one transaction.
	Delete(ctx context.Context, listID uuid.UUID) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, itemID uuid.UUID) (*Item, error)
	ListByList(ctx context.Context, listID uuid.UUID, params pagination.Params) ([]*Item, int64, error)
	NameTaken(ctx context.Context, listID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, itemID uuid.UUID) error
}
