package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/logger"
)

func sampleLines() []cart.Line {
	c := cart.New()
	c.Add(domain.Product{ID: 1, Name: "Soup", Price: 4.50})
	c.Add(domain.Product{ID: 2, Name: "Kebab", Price: 12.00})
	c.Add(domain.Product{ID: 2, Name: "Kebab", Price: 12.00})
	return c.Lines()
}

func TestNewOrderPayload(t *testing.T) {
	payload := NewOrderPayload(55, 9, sampleLines())

	if payload.OrderID != 55 || payload.TableNumber != 9 {
		t.Errorf("payload ids = order %d table %d", payload.OrderID, payload.TableNumber)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(payload.Items))
	}
	kebab := payload.Items[1]
	if kebab.Quantity != 2 || kebab.Subtotal != 24.00 {
		t.Errorf("kebab item = %+v, want quantity 2 subtotal 24", kebab)
	}
	if payload.TotalAmount != 28.50 {
		t.Errorf("total = %v, want 28.50", payload.TotalAmount)
	}
	if payload.Timestamp.IsZero() {
		t.Errorf("timestamp not set")
	}

	for _, want := range []string{"table 9", "Soup (1x) - 4.50", "Kebab (2x) - 24.00", "Total: 28.50"} {
		if !strings.Contains(payload.Body, want) {
			t.Errorf("summary missing %q:\n%s", want, payload.Body)
		}
	}
}

type recordingChannel struct {
	sent chan domain.NotificationPayload
	err  error
}

func (c *recordingChannel) Send(ctx context.Context, p domain.NotificationPayload) error {
	c.sent <- p
	return c.err
}

func TestTriggerSendsOnce(t *testing.T) {
	ch := &recordingChannel{sent: make(chan domain.NotificationPayload, 1)}
	trigger := NewTrigger(ch, logger.New("test"))

	trigger.Notify(NewOrderPayload(7, 3, sampleLines()))

	select {
	case p := <-ch.sent:
		if p.OrderID != 7 {
			t.Errorf("sent payload order id = %d, want 7", p.OrderID)
		}
	case <-time.After(time.Second):
		t.Fatalf("payload never reached the channel")
	}
}

func TestTriggerSwallowsChannelErrors(t *testing.T) {
	ch := &recordingChannel{sent: make(chan domain.NotificationPayload, 1), err: errors.New("broker down")}
	trigger := NewTrigger(ch, logger.New("test"))

	// Notify must return immediately and never propagate the failure.
	trigger.Notify(NewOrderPayload(8, 3, sampleLines()))

	select {
	case <-ch.sent:
	case <-time.After(time.Second):
		t.Fatalf("payload never attempted")
	}
}
