package shoppinglist

import (
	"time"

	domainList "shopping-list-api/internal/domain/shoppinglist"

	"github.com/google/uuid"
)

type CreateListRequest struct {
	Name        string `json:"name" validate:"required,safename,max=100"`
	Description string `json:"description" validate:"max=255"`
}

type UpdateListRequest struct {
	Name        *string `json:"name" validate:"omitempty,safename,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type CreateItemRequest struct {
	Name      string  `json:"name" validate:"required,safename,max=100"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gt=0"`
}

type UpdateItemRequest struct {
	Name      *string  `json:"name" validate:"omitempty,safename,max=100"`
	Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
	UnitPrice *float64 `json:"unit_price" validate:"omitempty,gt=0"`
}

type ListResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ListID    uuid.UUID `json:"list_id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToListResponse(l *domainList.ShoppingList) *ListResponse {
	return &ListResponse{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func ToItemResponse(i *domainList.Item) *ItemResponse {
	return &ItemResponse{
		ID:        i.ID,
		ListID:    i.ListID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		Total:     i.Total(),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
