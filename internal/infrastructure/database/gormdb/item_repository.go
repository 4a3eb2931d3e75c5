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

type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) shoppinglist.ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *shoppinglist.Item) error {
	now := time.Now().UTC()
	item.ID = uuid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toItemModel(item)).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, itemID uuid.UUID) (*shoppinglist.Item, error) {
	var dbModel models.ShoppingListItemModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", itemID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shoppinglist.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return toItemEntity(&dbModel), nil
}

func (r *ItemRepository) ListByList(ctx context.Context, listID uuid.UUID, params pagination.Params) ([]*shoppinglist.Item, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ShoppingListItemModel{}).Where("list_id = ?", listID)

	rows, total, err := findPage[models.ShoppingListItemModel](query, params, "name")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*shoppinglist.Item, len(rows))
	for i := range rows {
		items[i] = toItemEntity(&rows[i])
	}
	return items, total, nil
}

func (r *ItemRepository) NameTaken(ctx context.Context, listID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.ShoppingListItemModel{}).
		Where("list_id = ? AND LOWER(name) = ? AND id <> ?", listID, strings.ToLower(name), excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check item name: %w", err)
	}
	return count > 0, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *shoppinglist.Item) error {
	item.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).Model(&models.ShoppingListItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":       item.Name,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"updated_at": item.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.ShoppingListItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shoppinglist.ErrItemNotFound
	}
	return nil
}

func toItemModel(i *shoppinglist.Item) *models.ShoppingListItemModel {
	return &models.ShoppingListItemModel{
		ID:        i.ID,
		ListID:    i.ListID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func toItemEntity(m *models.ShoppingListItemModel) *shoppinglist.Item {
	return &shoppinglist.Item{
		ID:        m.ID,
		ListID:    m.ListID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
