package access

import (
	"context"
	"errors"
	"fmt"

	"shopping-list-api/internal/domain/shoppinglist"
	"shopping-list-api/internal/logger"
	appErrors "shopping-list-api/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Action int

const (
	ActionRead Action = iota
	ActionMutate
)

func (a Action) String() string {
	if a == ActionMutate {
		return "mutate"
	}
	return "read"
}

// ShareChecker answers whether a user takes part in a share of a list.
type ShareChecker interface {
	IsParticipant(ctx context.Context, listID, userID uuid.UUID) (bool, error)
}

// Guard decides what a caller may do with a shopping list or its items.
// Only the owner may mutate; owners and share participants may read.
type Guard struct {
	listRepo shoppinglist.ListRepository
	itemRepo shoppinglist.ItemRepository
	shares   ShareChecker
}

func NewGuard(
	listRepo shoppinglist.ListRepository,
	itemRepo shoppinglist.ItemRepository,
	shares ShareChecker,
) *Guard {
	return &Guard{
		listRepo: listRepo,
		itemRepo: itemRepo,
		shares:   shares,
	}
}

func (g *Guard) OwnerOf(ctx context.Context, listID uuid.UUID) (uuid.UUID, error) {
	list, err := g.getList(ctx, listID)
	if err != nil {
		return uuid.Nil, err
	}
	return list.OwnerID, nil
}

func (g *Guard) CanView(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	list, err := g.getList(ctx, listID)
	if err != nil {
		return false, err
	}
	return g.allowed(ctx, list, userID, ActionRead)
}

func (g *Guard) CanMutate(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	list, err := g.getList(ctx, listID)
	if err != nil {
		return false, err
	}
	return g.allowed(ctx, list, userID, ActionMutate)
}

// AuthorizeList returns the list when userID may perform action on it.
func (g *Guard) AuthorizeList(ctx context.Context, listID, userID uuid.UUID, action Action) (*shoppinglist.ShoppingList, error) {
	list, err := g.getList(ctx, listID)
	if err != nil {
		return nil, err
	}

	if err := g.authorize(ctx, list, userID, action); err != nil {
		return nil, err
	}

	return list, nil
}

// AuthorizeItem resolves the item's parent list and authorizes action on it.
func (g *Guard) AuthorizeItem(ctx context.Context, itemID, userID uuid.UUID, action Action) (*shoppinglist.Item, *shoppinglist.ShoppingList, error) {
	item, err := g.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, shoppinglist.ErrItemNotFound) {
			return nil, nil, appErrors.ErrItemNotFound
		}
		return nil, nil, fmt.Errorf("failed to get item: %w", err)
	}

	list, err := g.AuthorizeList(ctx, item.ListID, userID, action)
	if err != nil {
		return nil, nil, err
	}

	return item, list, nil
}

// AuthorizeListItem authorizes action on listID, then resolves itemID inside
// that list. An item that belongs to another list is ITEM_NOT_FOUND.
func (g *Guard) AuthorizeListItem(ctx context.Context, listID, itemID, userID uuid.UUID, action Action) (*shoppinglist.Item, *shoppinglist.ShoppingList, error) {
	list, err := g.AuthorizeList(ctx, listID, userID, action)
	if err != nil {
		return nil, nil, err
	}

	item, err := g.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, shoppinglist.ErrItemNotFound) {
			return nil, nil, appErrors.ErrItemNotFound
		}
		return nil, nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item.ListID != list.ID {
		return nil, nil, appErrors.ErrItemNotFound
	}

	return item, list, nil
}

func (g *Guard) authorize(ctx context.Context, list *shoppinglist.ShoppingList, userID uuid.UUID, action Action) error {
	ok, err := g.allowed(ctx, list, userID, action)
	if err != nil {
		return err
	}
	if !ok {
		logger.Ctx(ctx).Warn("Shopping list access denied",
			zap.String("list_id", list.ID.String()),
			zap.String("user_id", userID.String()),
			zap.String("action", action.String()),
			zap.String("event", "access_denied"),
		)
		return appErrors.ErrForbidden
	}
	return nil
}

func (g *Guard) allowed(ctx context.Context, list *shoppinglist.ShoppingList, userID uuid.UUID, action Action) (bool, error) {
	if list.OwnerID == userID {
		return true, nil
	}
	if action == ActionMutate {
		return false, nil
	}

	ok, err := g.shares.IsParticipant(ctx, list.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check share access: %w", err)
	}
	return ok, nil
}

func (g *Guard) getList(ctx context.Context, listID uuid.UUID) (*shoppinglist.ShoppingList, error) {
	list, err := g.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, shoppinglist.ErrListNotFound) {
			return nil, appErrors.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	return list, nil
}
