package models

import (
	"time"

	"github.com/google/uuid"
)

type ShoppingListModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Owner       *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name        string     `gorm:"type:varchar(255);not null;index"`
	Description string     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

type ShoppingListItemModel struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	ListID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	List      *ShoppingListModel `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
	Name      string             `gorm:"type:varchar(255);not null"`
	Quantity  float64            `gorm:"not null"`
	UnitPrice float64            `gorm:"not null"`
	CreatedAt time.Time          `gorm:"not null"`
	UpdatedAt time.Time          `gorm:"not null"`
}

func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}
