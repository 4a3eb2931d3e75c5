package friend

import (
	"time"

	domainFriend "shopping-list-api/internal/domain/friend"
	domainUser "shopping-list-api/internal/domain/user"

	"github.com/google/uuid"
)

type SendRequestRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type FriendResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type LinkResponse struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requester_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Accepted    bool      `json:"accepted"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToFriendResponse(u *domainUser.User) *FriendResponse {
	return &FriendResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

func ToLinkResponse(l *domainFriend.Link) *LinkResponse {
	return &LinkResponse{
		ID:          l.ID,
		RequesterID: l.RequesterID,
		RecipientID: l.RecipientID,
		Accepted:    l.Accepted,
		CreatedAt:   l.CreatedAt,
	}
}
