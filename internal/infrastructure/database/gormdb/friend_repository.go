package gormdb

import (
	"context"
	"errors"
	"fmt"
	"shopping-list-api/internal/domain/friend"
	"shopping-list-api/internal/domain/user"
	"shopping-list-api/internal/infrastructure/database/gormdb/models"
	"shopping-list-api/pkg/pagination"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendRepository struct {
	db *DB
}

func NewFriendRepository(db *DB) friend.Repository {
	return &FriendRepository{db: db}
}

func (r *FriendRepository) Create(ctx context.Context, link *friend.Link) error {
	now := time.Now().UTC()
	link.ID = uuid.New()
	link.CreatedAt = now
	link.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toFriendLinkModel(link)).Error; err != nil {
		if isDuplicateKeyError(err) {
			return friend.ErrLinkExists
		}
		return fmt.Errorf("failed to create friend link: %w", err)
	}
	return nil
}

func (r *FriendRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*friend.Link, error) {
	low, high := orderedPair(a, b)

	var dbModel models.FriendLinkModel
	err := r.db.DB.WithContext(ctx).
		Where("user_low = ? AND user_high = ?", low, high).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, friend.ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend link: %w", err)
	}

	return toFriendLinkEntity(&dbModel), nil
}

func (r *FriendRepository) Accept(ctx context.Context, linkID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&models.FriendLinkModel{}).
		Where("id = ?", linkID).
		Updates(map[string]interface{}{
			"accepted":   true,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to accept friend link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return friend.ErrLinkNotFound
	}
	return nil
}

func (r *FriendRepository) DeleteWithShares(ctx context.Context, link *friend.Link) error {
	low, high := orderedPair(link.RequesterID, link.RecipientID)

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_low = ? AND user_high = ?", low, high).Delete(&models.SharedListModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete shares between friends: %w", err)
		}

		result := tx.Delete(&models.FriendLinkModel{}, "id = ?", link.ID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete friend link: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return friend.ErrLinkNotFound
		}
		return nil
	})
}

func (r *FriendRepository) ListFriends(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]*user.User, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Joins("JOIN friend_links ON (friend_links.requester_id = users.id AND friend_links.recipient_id = ?) OR (friend_links.recipient_id = users.id AND friend_links.requester_id = ?)", userID, userID).
		Where("friend_links.accepted = ?", true)

	rows, total, err := findPage[models.UserModel](query, params, "users.username")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list friends: %w", err)
	}

	return toUserEntities(rows), total, nil
}

func (r *FriendRepository) ListIncomingRequests(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]*user.User, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Joins("JOIN friend_links ON friend_links.requester_id = users.id").
		Where("friend_links.recipient_id = ? AND friend_links.accepted = ?", userID, false)

	rows, total, err := findPage[models.UserModel](query, params, "users.username")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list friend requests: %w", err)
	}

	return toUserEntities(rows), total, nil
}

func toFriendLinkModel(l *friend.Link) *models.FriendLinkModel {
	low, high := orderedPair(l.RequesterID, l.RecipientID)
	return &models.FriendLinkModel{
		ID:          l.ID,
		RequesterID: l.RequesterID,
		RecipientID: l.RecipientID,
		Accepted:    l.Accepted,
		UserLow:     low,
		UserHigh:    high,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toFriendLinkEntity(m *models.FriendLinkModel) *friend.Link {
	return &friend.Link{
		ID:          m.ID,
		RequesterID: m.RequesterID,
		RecipientID: m.RecipientID,
		Accepted:    m.Accepted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
