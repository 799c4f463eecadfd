package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tableside/internal/connections/rabbitmq"
	"tableside/internal/domain"
)

// AMQPChannel publishes payloads to the staff notification exchange.
type AMQPChannel struct {
	client *rabbitmq.Client
}

func NewAMQPChannel(client *rabbitmq.Client) *AMQPChannel {
	return &AMQPChannel{client: client}
}

func (c *AMQPChannel) Send(ctx context.Context, payload domain.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return c.client.Publish(ctx, rabbitmq.NotificationsExchange, "", uuid.NewString(), body)
}
