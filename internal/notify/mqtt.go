package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"shopping-list-api/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageClient is the part of the MQTT client the publisher needs.
type MessageClient interface {
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
}

type MQTTPublisher struct {
	client MessageClient
	prefix string
	qos    byte
}

func NewMQTTPublisher(client MessageClient, prefix string, qos int) *MQTTPublisher {
	if qos < 0 || qos > 2 {
		qos = 1
	}
	return &MQTTPublisher{
		client: client,
		prefix: strings.Trim(prefix, "/"),
		qos:    byte(qos),
	}
}

// Topic is the per-user notification topic.
func Topic(prefix string, recipientID uuid.UUID) string {
	if prefix == "" {
		return fmt.Sprintf("users/%s/notifications", recipientID)
	}
	return fmt.Sprintf("%s/users/%s/notifications", prefix, recipientID)
}

func (p *MQTTPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	topic := Topic(p.prefix, event.RecipientID)
	if err := p.client.Publish(ctx, topic, p.qos, false, payload); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	logger.Ctx(ctx).Debug("Notification published",
		zap.String("topic", topic),
		zap.String("type", string(event.Type)),
	)
	return nil
}
