package share

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainShare "shopping-list-api/internal/domain/share"
	"shopping-list-api/internal/domain/shoppinglist"
	"shopping-list-api/internal/logger"
	"shopping-list-api/internal/notify"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FriendChecker is the part of the friend graph sharing depends on.
type FriendChecker interface {
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// Service grants and revokes read access to shopping lists between friends.
type Service struct {
	listRepo  shoppinglist.ListRepository
	shareRepo domainShare.Repository
	friends   FriendChecker
	publisher notify.Publisher
}

func NewService(
	listRepo shoppinglist.ListRepository,
	shareRepo domainShare.Repository,
	friends FriendChecker,
	publisher notify.Publisher,
) *Service {
	return &Service{
		listRepo:  listRepo,
		shareRepo: shareRepo,
		friends:   friends,
		publisher: publisher,
	}
}

func (s *Service) ShareList(ctx context.Context, ownerID, listID, friendID uuid.UUID) error {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return err
	}
	if list.OwnerID != ownerID {
		return appErrors.ErrListNotOwned
	}

	friends, err := s.friends.AreFriends(ctx, ownerID, friendID)
	if err != nil {
		return err
	}
	if !friends {
		return appErrors.ErrShareNotFriends
	}

	exists, err := s.shareRepo.ExistsBetween(ctx, listID, ownerID, friendID)
	if err != nil {
		return fmt.Errorf("failed to check existing share: %w", err)
	}
	if exists {
		return appErrors.ErrAlreadyShared
	}

	now := time.Now().UTC()
	grant := &domainShare.Grant{
		ListID:    listID,
		OwnerID:   ownerID,
		FriendID:  friendID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.shareRepo.Create(ctx, grant); err != nil {
		if errors.Is(err, domainShare.ErrGrantExists) {
			return appErrors.ErrAlreadyShared
		}
		return fmt.Errorf("failed to share list: %w", err)
	}

	logger.Ctx(ctx).Info("Shopping list shared",
		zap.String("list_id", listID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("friend_id", friendID.String()),
		zap.String("event", "list_shared"),
	)

	notify.Send(ctx, s.publisher, notify.NewEvent(notify.ListShared, friendID, ownerID).WithList(listID))

	return nil
}

// Unshare removes the share on listID between requesterID and friendID.
// When requesterID names itself as the friend and no such pair exists, every
// share of listID it participates in is removed instead.
func (s *Service) Unshare(ctx context.Context, listID, requesterID, friendID uuid.UUID) error {
	if _, err := s.getList(ctx, listID); err != nil {
		return err
	}

	deleted, err := s.shareRepo.DeleteBetween(ctx, listID, requesterID, friendID)
	if err != nil {
		return fmt.Errorf("failed to unshare list: %w", err)
	}

	if deleted == 0 && requesterID == friendID {
		deleted, err = s.shareRepo.DeleteAllForParticipant(ctx, listID, requesterID)
		if err != nil {
			return fmt.Errorf("failed to unshare list: %w", err)
		}
	}

	if deleted == 0 {
		return appErrors.ErrNotShared
	}

	logger.Ctx(ctx).Info("Shopping list unshared",
		zap.String("list_id", listID.String()),
		zap.String("requester_id", requesterID.String()),
		zap.String("friend_id", friendID.String()),
		zap.Int64("removed", deleted),
		zap.String("event", "list_unshared"),
	)

	return nil
}

// CanView reports whether userID owns listID or participates in a share of it.
// A missing list is not viewable.
func (s *Service) CanView(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, shoppinglist.ErrListNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get shopping list: %w", err)
	}
	if list.OwnerID == userID {
		return true, nil
	}

	ok, err := s.shareRepo.IsParticipant(ctx, listID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check share: %w", err)
	}

	return ok, nil
}

func (s *Service) ListSharedWith(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Result[*SharedListResponse], error) {
	lists, total, err := s.shareRepo.ListSharedWith(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared lists: %w", err)
	}

	page, err := pagination.NewResult(lists, total, params)
	if err != nil {
		if errors.Is(err, appErrors.ErrEmptyResult) {
			return nil, appErrors.ErrEmptyResult.WithMessage("No shopping lists have been shared with you")
		}
		return nil, err
	}

	return pagination.Map(page, ToSharedListResponse), nil
}

func (s *Service) getList(ctx context.Context, listID uuid.UUID) (*shoppinglist.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, shoppinglist.ErrListNotFound) {
			return nil, appErrors.ErrNoSuchList
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	return list, nil
}
