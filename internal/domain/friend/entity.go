package friend

import (
	"time"

	"github.com/google/uuid"
)

// Link is a friend request from RequesterID to RecipientID. It becomes a
// friendship once Accepted. At most one link exists per unordered pair.
type Link struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	RecipientID uuid.UUID
	Accepted    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Involves reports whether userID is either side of the link.
func (l *Link) Involves(userID uuid.UUID) bool {
	return l.RequesterID == userID || l.RecipientID == userID
}

// Counterpart returns the other side of the link.
func (l *Link) Counterpart(userID uuid.UUID) uuid.UUID {
	if l.RequesterID == userID {
		return l.RecipientID
	}
	return l.RequesterID
}
