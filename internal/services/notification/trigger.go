// Package notification builds and delivers the best-effort staff alert for
// a new order. Nothing here may block or fail the submission path.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/logger"
)

// Channel delivers one payload to the staff side.
type Channel interface {
	Send(ctx context.Context, payload domain.NotificationPayload) error
}

// Notifier is the fire-and-forget surface the coordinator sees.
type Notifier interface {
	Notify(payload domain.NotificationPayload)
}

// Trigger sends each payload on a detached goroutine. Failures are logged
// and dropped; the caller never learns about them.
type Trigger struct {
	ch      Channel
	lg      *logger.Logger
	timeout time.Duration
}

func NewTrigger(ch Channel, lg *logger.Logger) *Trigger {
	return &Trigger{ch: ch, lg: lg, timeout: 5 * time.Second}
}

func (t *Trigger) Notify(payload domain.NotificationPayload) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				t.lg.Error("notification_panic", "", fmt.Errorf("%v", r), nil)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if err := t.ch.Send(ctx, payload); err != nil {
			t.lg.Error("notification_failed", "", err, map[string]any{"order_id": payload.OrderID})
			return
		}
		t.lg.Debug("notification_sent", "", map[string]any{"order_id": payload.OrderID})
	}()
}

// NewOrderPayload snapshots the cart lines into the staff alert: one item
// per line with its subtotal, the grand total, and a readable summary.
func NewOrderPayload(orderID, tableNumber int, lines []cart.Line) domain.NotificationPayload {
	items := make([]domain.NotificationItem, 0, len(lines))
	var total float64
	for _, ln := range lines {
		items = append(items, domain.NotificationItem{
			ProductID: ln.Product.ID,
			Name:      ln.Product.Name,
			Quantity:  ln.Quantity,
			Price:     ln.Product.Price,
			Subtotal:  ln.Subtotal(),
		})
		total += ln.Subtotal()
	}
	return domain.NotificationPayload{
		OrderID:     orderID,
		Title:       "New order received",
		Body:        formatSummary(items, total, tableNumber),
		Items:       items,
		TotalAmount: total,
		TableNumber: tableNumber,
		Timestamp:   time.Now().UTC(),
	}
}

func formatSummary(items []domain.NotificationItem, total float64, tableNumber int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order for table %d:\n\n", tableNumber)
	for _, it := range items {
		fmt.Fprintf(&b, "%s (%dx) - %.2f\n", it.Name, it.Quantity, it.Subtotal)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f", total)
	return b.String()
}
