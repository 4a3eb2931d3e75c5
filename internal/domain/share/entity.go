package share

import (
	"time"

	"github.com/google/uuid"
)

// Grant gives FriendID read access to ListID, owned by OwnerID.
type Grant struct {
	ID        uuid.UUID
	ListID    uuid.UUID
	OwnerID   uuid.UUID
	FriendID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
