package gormdb

import (
	"context"
	"errors"
	"fmt"
	"shopping-list-api/internal/domain/shoppinglist"
	"shopping-list-api/internal/infrastructure/database/gormdb/models"
	"shopping-list-api/pkg/pagination"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingListRepository struct {
	db *DB
}

func NewShoppingListRepository(db *DB) shoppinglist.ListRepository {
	return &ShoppingListRepository{db: db}
}

func (r *ShoppingListRepository) Create(ctx context.Context, list *shoppinglist.ShoppingList) error {
	now := time.Now().UTC()
	list.ID = uuid.New()
	list.CreatedAt = now
	list.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toShoppingListModel(list)).Error; err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}
	return nil
}

func (r *ShoppingListRepository) GetByID(ctx context.Context, listID uuid.UUID) (*shoppinglist.ShoppingList, error) {
	var dbModel models.ShoppingListModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", listID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shoppinglist.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	return toShoppingListEntity(&dbModel), nil
}

func (r *ShoppingListRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params pagination.Params) ([]*shoppinglist.ShoppingList, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ShoppingListModel{}).Where("owner_id = ?", ownerID)

	rows, total, err := findPage[models.ShoppingListModel](query, params, "name")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shopping lists: %w", err)
	}

	return toShoppingListEntities(rows), total, nil
}

func (r *ShoppingListRepository) NameTaken(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.ShoppingListModel{}).
		Where("owner_id = ? AND LOWER(name) = ? AND id <> ?", ownerID, strings.ToLower(name), excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check shopping list name: %w", err)
	}
	return count > 0, nil
}

func (r *ShoppingListRepository) Update(ctx context.Context, list *shoppinglist.ShoppingList) error {
	list.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).Model(&models.ShoppingListModel{}).
		Where("id = ?", list.ID).
		Updates(map[string]interface{}{
			"name":        list.Name,
			"description": list.Description,
			"updated_at":  list.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shopping list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrListNotFound
	}

	return nil
}

func (r *ShoppingListRepository) Delete(ctx context.Context, listID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&models.ShoppingListItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		if err := tx.Where("list_id = ?", listID).Delete(&models.SharedListModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete shares: %w", err)
		}

		result := tx.Delete(&models.ShoppingListModel{}, "id = ?", listID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete shopping list: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shoppinglist.ErrListNotFound
		}
		return nil
	})
}

func toShoppingListModel(l *shoppinglist.ShoppingList) *models.ShoppingListModel {
	return &models.ShoppingListModel{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toShoppingListEntity(m *models.ShoppingListModel) *shoppinglist.ShoppingList {
	return &shoppinglist.ShoppingList{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toShoppingListEntities(rows []models.ShoppingListModel) []*shoppinglist.ShoppingList {
	lists := make([]*shoppinglist.ShoppingList, len(rows))
	for i := range rows {
		lists[i] = toShoppingListEntity(&rows[i])
	}
	return lists
}
