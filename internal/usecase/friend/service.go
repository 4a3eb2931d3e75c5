package friend

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainFriend "shopping-list-api/internal/domain/friend"
	domainUser "shopping-list-api/internal/domain/user"
	"shopping-list-api/internal/logger"
	"shopping-list-api/internal/notify"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service maintains the friend graph: pending requests and accepted friendships.
type Service struct {
	userRepo  domainUser.Repository
	linkRepo  domainFriend.Repository
	publisher notify.Publisher
}

func NewService(
	userRepo domainUser.Repository,
	linkRepo domainFriend.Repository,
	publisher notify.Publisher,
) *Service {
	return &Service{
		userRepo:  userRepo,
		linkRepo:  linkRepo,
		publisher: publisher,
	}
}

func (s *Service) SendRequest(ctx context.Context, requesterID, targetID uuid.UUID) (*LinkResponse, error) {
	if requesterID == targetID {
		return nil, appErrors.ErrSelfFriend
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get target user: %w", err)
	}

	existing, err := s.linkRepo.FindBetween(ctx, requesterID, targetID)
	if err != nil && !errors.Is(err, domainFriend.ErrLinkNotFound) {
		return nil, fmt.Errorf("failed to check existing link: %w", err)
	}
	if existing != nil {
		if existing.Accepted {
			return nil, appErrors.ErrAlreadyFriends
		}
		return nil, appErrors.ErrRequestAlreadySent
	}

	now := time.Now().UTC()
	link := &domainFriend.Link{
		RequesterID: requesterID,
		RecipientID: targetID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		if errors.Is(err, domainFriend.ErrLinkExists) {
			return nil, appErrors.ErrRequestAlreadySent
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	logger.Ctx(ctx).Info("Friend request sent",
		zap.String("requester_id", requesterID.String()),
		zap.String("recipient_id", targetID.String()),
		zap.String("event", "friend_request_sent"),
	)

	notify.Send(ctx, s.publisher, notify.NewEvent(notify.FriendRequestSent, targetID, requesterID))

	return ToLinkResponse(link), nil
}

// AcceptRequest accepts the pending request requesterID sent to recipientID.
func (s *Service) AcceptRequest(ctx context.Context, recipientID, requesterID uuid.UUID) error {
	link, err := s.linkRepo.FindBetween(ctx, requesterID, recipientID)
	if err != nil {
		if errors.Is(err, domainFriend.ErrLinkNotFound) {
			return appErrors.ErrNoSuchRequest
		}
		return fmt.Errorf("failed to find friend request: %w", err)
	}
	if link.RequesterID != requesterID || link.RecipientID != recipientID {
		return appErrors.ErrNoSuchRequest
	}
	if link.Accepted {
		return appErrors.ErrAlreadyFriends
	}

	if err := s.linkRepo.Accept(ctx, link.ID); err != nil {
		if errors.Is(err, domainFriend.ErrLinkNotFound) {
			return appErrors.ErrNoSuchRequest
		}
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	logger.Ctx(ctx).Info("Friend request accepted",
		zap.String("requester_id", requesterID.String()),
		zap.String("recipient_id", recipientID.String()),
		zap.String("event", "friend_request_accepted"),
	)

	notify.Send(ctx, s.publisher, notify.NewEvent(notify.FriendRequestAccepted, requesterID, recipientID))

	return nil
}

// RemoveFriend ends the friendship between a and b and revokes every share
// between them.
func (s *Service) RemoveFriend(ctx context.Context, a, b uuid.UUID) error {
	link, err := s.linkRepo.FindBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, domainFriend.ErrLinkNotFound) {
			return appErrors.ErrNotFriends
		}
		return fmt.Errorf("failed to find friendship: %w", err)
	}
	if !link.Accepted {
		return appErrors.ErrNotFriends
	}

	if err := s.linkRepo.DeleteWithShares(ctx, link); err != nil {
		if errors.Is(err, domainFriend.ErrLinkNotFound) {
			return appErrors.ErrNotFriends
		}
		return fmt.Errorf("failed to remove friend: %w", err)
	}

	logger.Ctx(ctx).Info("Friend removed",
		zap.String("user_id", a.String()),
		zap.String("friend_id", b.String()),
		zap.String("event", "friend_removed"),
	)

	return nil
}

func (s *Service) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == b {
		return false, nil
	}

	link, err := s.linkRepo.FindBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, domainFriend.ErrLinkNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find friendship: %w", err)
	}

	return link.Accepted, nil
}

func (s *Service) ListFriends(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Result[*FriendResponse], error) {
	users, total, err := s.linkRepo.ListFriends(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}

	return toPage(users, total, params, "You have no friends")
}

func (s *Service) ListIncomingRequests(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Result[*FriendResponse], error) {
	users, total, err := s.linkRepo.ListIncomingRequests(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}

	return toPage(users, total, params, "You have no friend requests")
}

func toPage(users []*domainUser.User, total int64, params pagination.Params, emptyMessage string) (*pagination.Result[*FriendResponse], error) {
	page, err := pagination.NewResult(users, total, params)
	if err != nil {
		if errors.Is(err, appErrors.ErrEmptyResult) {
			return nil, appErrors.ErrEmptyResult.WithMessage(emptyMessage)
		}
		return nil, err
	}

	return pagination.Map(page, ToFriendResponse), nil
}
