package models

import (
	"time"

	"github.com/google/uuid"
)

// FriendLinkModel stores a friend request. UserLow and UserHigh hold the two
// user ids in canonical order so the unique index covers both orientations.
type FriendLinkModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Requester   *UserModel `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Recipient   *UserModel `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	Accepted    bool       `gorm:"default:false;not null"`
	UserLow     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_friend_links_pair"`
	UserHigh    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_friend_links_pair"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (FriendLinkModel) TableName() string {
	return "friend_links"
}

// SharedListModel grants FriendID read access to ListID.
type SharedListModel struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	ListID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_shared_lists_pair,priority:1"`
	List      *ShoppingListModel `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
	OwnerID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	FriendID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	UserLow   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_shared_lists_pair,priority:2"`
	UserHigh  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_shared_lists_pair,priority:3"`
	CreatedAt time.Time          `gorm:"not null"`
	UpdatedAt time.Time          `gorm:"not null"`
}

func (SharedListModel) TableName() string {
	return "shared_lists"
}
