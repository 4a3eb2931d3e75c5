package shoppinglist

import (
	"time"

	"github.com/google/uuid"
)

type ShoppingList struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Item struct {
	ID        uuid.UUID
	ListID    uuid.UUID
	Name      string
	Quantity  float64
	UnitPrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *Item) Total() float64 {
	return i.Quantity * i.UnitPrice
}
