package gormdb

import (
	"context"
	"fmt"
	"shopping-list-api/internal/domain/share"
	"shopping-list-api/internal/domain/shoppinglist"
	"shopping-list-api/internal/infrastructure/database/gormdb/models"
	"shopping-list-api/pkg/pagination"
	"time"

	"github.com/google/uuid"
)

type ShareRepository struct {
	db *DB
}

func NewShareRepository(db *DB) share.Repository {
	return &ShareRepository{db: db}
}

func (r *ShareRepository) Create(ctx context.Context, grant *share.Grant) error {
	now := time.Now().UTC()
	grant.ID = uuid.New()
	grant.CreatedAt = now
	grant.UpdatedAt = now

	low, high := orderedPair(grant.OwnerID, grant.FriendID)
	dbModel := &models.SharedListModel{
		ID:        grant.ID,
		ListID:    grant.ListID,
		OwnerID:   grant.OwnerID,
		FriendID:  grant.FriendID,
		UserLow:   low,
		UserHigh:  high,
		CreatedAt: grant.CreatedAt,
		UpdatedAt: grant.UpdatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKeyError(err) {
			return share.ErrGrantExists
		}
		return fmt.Errorf("failed to create share: %w", err)
	}
	return nil
}

func (r *ShareRepository) ExistsBetween(ctx context.Context, listID, a, b uuid.UUID) (bool, error) {
	low, high := orderedPair(a, b)

	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.SharedListModel{}).
		Where("list_id = ? AND user_low = ? AND user_high = ?", listID, low, high).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check share: %w", err)
	}
	return count > 0, nil
}

func (r *ShareRepository) IsParticipant(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.SharedListModel{}).
		Where("list_id = ? AND (owner_id = ? OR friend_id = ?)", listID, userID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check share participant: %w", err)
	}
	return count > 0, nil
}

func (r *ShareRepository) DeleteBetween(ctx context.Context, listID, a, b uuid.UUID) (int64, error) {
	low, high := orderedPair(a, b)

	result := r.db.DB.WithContext(ctx).
		Where("list_id = ? AND user_low = ? AND user_high = ?", listID, low, high).
		Delete(&models.SharedListModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete share: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ShareRepository) DeleteAllForParticipant(ctx context.Context, listID, userID uuid.UUID) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("list_id = ? AND (owner_id = ? OR friend_id = ?)", listID, userID, userID).
		Delete(&models.SharedListModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete shares: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ShareRepository) ListSharedWith(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]*shoppinglist.ShoppingList, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ShoppingListModel{}).
		Where("shopping_lists.owner_id <> ?", userID).
		Where("EXISTS (SELECT 1 FROM shared_lists WHERE shared_lists.list_id = shopping_lists.id AND (shared_lists.owner_id = ? OR shared_lists.friend_id = ?))", userID, userID)

	rows, total, err := findPage[models.ShoppingListModel](query, params, "shopping_lists.name")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shared lists: %w", err)
	}

	return toShoppingListEntities(rows), total, nil
}
