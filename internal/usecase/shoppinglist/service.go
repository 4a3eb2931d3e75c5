package shoppinglist

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainList "shopping-list-api/internal/domain/shoppinglist"
	"shopping-list-api/internal/logger"
	"shopping-list-api/internal/usecase/access"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/pagination"
	"shopping-list-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errNothingToUpdate = errors.New("nothing to update")

// Service implements shopping list and item use cases. Every call takes the
// authenticated caller and is checked by the access guard.
type Service struct {
	listRepo domainList.ListRepository
	itemRepo domainList.ItemRepository
	guard    *access.Guard
}

func NewService(
	listRepo domainList.ListRepository,
	itemRepo domainList.ItemRepository,
	guard *access.Guard,
) *Service {
	return &Service{
		listRepo: listRepo,
		itemRepo: itemRepo,
		guard:    guard,
	}
}

func (s *Service) CreateList(ctx context.Context, callerID uuid.UUID, req *CreateListRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	if err := s.checkListName(ctx, callerID, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	list := &domainList.ShoppingList{
		OwnerID:     callerID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}

	logger.Ctx(ctx).Info("Shopping list created",
		zap.String("list_id", list.ID.String()),
		zap.String("owner_id", callerID.String()),
		zap.String("event", "list_created"),
	)

	return ToListResponse(list), nil
}

// ListLists returns the caller's own lists.
func (s *Service) ListLists(ctx context.Context, callerID uuid.UUID, params pagination.Params) (*pagination.Result[*ListResponse], error) {
	lists, total, err := s.listRepo.ListByOwner(ctx, callerID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	page, err := pagination.NewResult(lists, total, params)
	if err != nil {
		if errors.Is(err, appErrors.ErrEmptyResult) {
			return nil, appErrors.ErrEmptyResult.WithMessage("No shopping lists found")
		}
		return nil, err
	}

	return pagination.Map(page, ToListResponse), nil
}

func (s *Service) GetList(ctx context.Context, callerID, listID uuid.UUID) (*ListResponse, error) {
	list, err := s.guard.AuthorizeList(ctx, listID, callerID, access.ActionRead)
	if err != nil {
		return nil, err
	}
	return ToListResponse(list), nil
}

func (s *Service) UpdateList(ctx context.Context, callerID, listID uuid.UUID, req *UpdateListRequest) (*ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}
	if req.Name == nil && req.Description == nil {
		return nil, appErrors.NewValidationError(errNothingToUpdate)
	}

	list, err := s.guard.AuthorizeList(ctx, listID, callerID, access.ActionMutate)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := s.checkListName(ctx, callerID, *req.Name, list.ID); err != nil {
			return nil, err
		}
		list.Name = *req.Name
	}
	if req.Description != nil {
		list.Description = *req.Description
	}
	list.UpdatedAt = time.Now().UTC()

	if err := s.listRepo.Update(ctx, list); err != nil {
		if errors.Is(err, domainList.ErrListNotFound) {
			return nil, appErrors.ErrListNotFound
		}
		return nil, fmt.Errorf("failed to update shopping list: %w", err)
	}

	logger.Ctx(ctx).Info("Shopping list updated",
		zap.String("list_id", list.ID.String()),
		zap.String("event", "list_updated"),
	)

	return ToListResponse(list), nil
}

// DeleteList removes the list together with its items and shares.
func (s *Service) DeleteList(ctx context.Context, callerID, listID uuid.UUID) error {
	if _, err := s.guard.AuthorizeList(ctx, listID, callerID, access.ActionMutate); err != nil {
		return err
	}

	if err := s.listRepo.Delete(ctx, listID); err != nil {
		if errors.Is(err, domainList.ErrListNotFound) {
			return appErrors.ErrListNotFound
		}
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	logger.Ctx(ctx).Info("Shopping list deleted",
		zap.String("list_id", listID.String()),
		zap.String("owner_id", callerID.String()),
		zap.String("event", "list_deleted"),
	)

	return nil
}

func (s *Service) CreateItem(ctx context.Context, callerID, listID uuid.UUID, req *CreateItemRequest) (*ItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	if _, err := s.guard.AuthorizeList(ctx, listID, callerID, access.ActionMutate); err != nil {
		return nil, err
	}

	if err := s.checkItemName(ctx, listID, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domainList.Item{
		ListID:    listID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	logger.Ctx(ctx).Info("Shopping list item created",
		zap.String("list_id", listID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("event", "item_created"),
	)

	return ToItemResponse(item), nil
}

// ListItems is available to the owner and to users the list is shared with.
func (s *Service) ListItems(ctx context.Context, callerID, listID uuid.UUID, params pagination.Params) (*pagination.Result[*ItemResponse], error) {
	if _, err := s.guard.AuthorizeList(ctx, listID, callerID, access.ActionRead); err != nil {
		return nil, err
	}

	items, total, err := s.itemRepo.ListByList(ctx, listID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	page, err := pagination.NewResult(items, total, params)
	if err != nil {
		if errors.Is(err, appErrors.ErrEmptyResult) {
			return nil, appErrors.ErrEmptyResult.WithMessage("No items found in this shopping list")
		}
		return nil, err
	}

	return pagination.Map(page, ToItemResponse), nil
}

func (s *Service) GetItem(ctx context.Context, callerID, listID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.authorizeItem(ctx, callerID, listID, itemID, access.ActionRead)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

func (s *Service) UpdateItem(ctx context.Context, callerID, listID, itemID uuid.UUID, req *UpdateItemRequest) (*ItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}
	if req.Name == nil && req.Quantity == nil && req.UnitPrice == nil {
		return nil, appErrors.NewValidationError(errNothingToUpdate)
	}

	item, err := s.authorizeItem(ctx, callerID, listID, itemID, access.ActionMutate)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := s.checkItemName(ctx, listID, *req.Name, item.ID); err != nil {
			return nil, err
		}
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, domainList.ErrItemNotFound) {
			return nil, appErrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	logger.Ctx(ctx).Info("Shopping list item updated",
		zap.String("list_id", listID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("event", "item_updated"),
	)

	return ToItemResponse(item), nil
}

func (s *Service) DeleteItem(ctx context.Context, callerID, listID, itemID uuid.UUID) error {
	if _, err := s.authorizeItem(ctx, callerID, listID, itemID, access.ActionMutate); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		if errors.Is(err, domainList.ErrItemNotFound) {
			return appErrors.ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	logger.Ctx(ctx).Info("Shopping list item deleted",
		zap.String("list_id", listID.String()),
		zap.String("item_id", itemID.String()),
		zap.String("event", "item_deleted"),
	)

	return nil
}

// authorizeItem authorizes the item and checks it belongs to listID.
func (s *Service) authorizeItem(ctx context.Context, callerID, listID, itemID uuid.UUID, action access.Action) (*domainList.Item, error) {
	item, _, err := s.guard.AuthorizeListItem(ctx, listID, itemID, callerID, action)
	return item, err
}

func (s *Service) checkListName(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) error {
	taken, err := s.listRepo.NameTaken(ctx, ownerID, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check list name: %w", err)
	}
	if taken {
		return appErrors.ErrListExists
	}
	return nil
}

func (s *Service) checkItemName(ctx context.Context, listID uuid.UUID, name string, excludeID uuid.UUID) error {
	taken, err := s.itemRepo.NameTaken(ctx, listID, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check item name: %w", err)
	}
	if taken {
		return appErrors.ErrItemExists
	}
	return nil
}
