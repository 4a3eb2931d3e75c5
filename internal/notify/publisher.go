package notify

//go:generate mockgen -source=publisher.go -destination=mocks/publisher_mock.go -package=mocks

import (
	"context"
	"time"

	"shopping-list-api/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventType string

const (
	FriendRequestSent     EventType = "friend_request.sent"
	FriendRequestAccepted EventType = "friend_request.accepted"
	ListShared            EventType = "list.shared"
)

// Event is delivered to a single recipient.
type Event struct {
	Type        EventType  `json:"type"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	ActorID     uuid.UUID  `json:"actor_id"`
	ListID      *uuid.UUID `json:"list_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewEvent(eventType EventType, recipientID, actorID uuid.UUID) Event {
	return Event{
		Type:        eventType,
		RecipientID: recipientID,
		ActorID:     actorID,
		CreatedAt:   time.Now().UTC(),
	}
}

func (e Event) WithList(listID uuid.UUID) Event {
	e.ListID = &listID
	return e
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Send publishes event and logs a failure instead of returning it.
func Send(ctx context.Context, publisher Publisher, event Event) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Ctx(ctx).Warn("Failed to publish notification",
			zap.String("type", string(event.Type)),
			zap.String("recipient_id", event.RecipientID.String()),
			zap.Error(err),
			zap.String("event", "notification_failed"),
		)
	}
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
