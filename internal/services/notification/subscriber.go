package notification

import (
	"context"
	"encoding/json"

	"tableside/internal/connections/rabbitmq"
	"tableside/internal/domain"
	"tableside/internal/logger"
)

// Subscriber consumes staff notifications and writes them to the log.
// It stands in for the push relay the mobile app talked to.
type Subscriber struct {
	client *rabbitmq.Client
	lg     *logger.Logger
}

func NewSubscriber(client *rabbitmq.Client, lg *logger.Logger) *Subscriber {
	return &Subscriber{client: client, lg: lg}
}

func (s *Subscriber) Run(ctx context.Context) error {
	deliveries, err := s.client.Consume(rabbitmq.NotificationsQueue, "staff-notifier", 1)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return nil
			}
			var payload domain.NotificationPayload
			if err := json.Unmarshal(msg.Body, &payload); err != nil {
				s.lg.Error("notification_decode_failed", msg.MessageId, err, nil)
				_ = msg.Nack(false, false)
				continue
			}
			s.lg.Info("new_order_notification", msg.MessageId, map[string]any{
				"order_id":     payload.OrderID,
				"table_number": payload.TableNumber,
				"total_amount": payload.TotalAmount,
				"summary":      payload.Body,
			})
			_ = msg.Ack(false)
		}
	}
}
