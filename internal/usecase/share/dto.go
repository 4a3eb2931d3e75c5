package share

import (
	"time"

	"shopping-list-api/internal/domain/shoppinglist"

	"github.com/google/uuid"
)

type ShareListRequest struct {
	ListID   uuid.UUID `json:"list_id" validate:"required"`
	FriendID uuid.UUID `json:"friend_id" validate:"required"`
}

type UnshareRequest struct {
	FriendID uuid.UUID `json:"friend_id" validate:"required"`
}

type SharedListResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToSharedListResponse(l *shoppinglist.ShoppingList) *SharedListResponse {
	return &SharedListResponse{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Name:        l.Name,
		Description: l.Description,
		UpdatedAt:   l.UpdatedAt,
	}
}
