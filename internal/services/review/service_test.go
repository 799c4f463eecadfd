package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableside/internal/domain"
	"tableside/internal/logger"
)

type fakeStore struct {
	orders    map[int]*domain.Order
	statusErr error
}

func (f *fakeStore) GetOrder(ctx context.Context, orderID int) (domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *o, nil
}

func (f *fakeStore) SetOrderStatus(ctx context.Context, orderID int, confirmed bool) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	o, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.IsConfirmed != nil {
		return domain.ErrOrderFinalized
	}
	o.IsConfirmed = &confirmed
	return nil
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func pendingOrder(id int) *domain.Order {
	return &domain.Order{ID: id, CustomerID: "cust-1", TableNumber: 4, CreatedAt: time.Now()}
}

func TestReviewTransitions(t *testing.T) {
	tests := []struct {
		name       string
		confirmed  bool
		wantStatus domain.OrderStatus
	}{
		{"pending to confirmed", true, domain.StatusConfirmed},
		{"pending to rejected", false, domain.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{orders: map[int]*domain.Order{1: pendingOrder(1)}}
			svc := NewService(store, logger.New("test"))

			order, err := svc.Review(context.Background(), "req-1", 1, tt.confirmed)
			if err != nil {
				t.Fatalf("Review: %v", err)
			}
			if order.Status() != tt.wantStatus {
				t.Errorf("status = %s, want %s", order.Status(), tt.wantStatus)
			}
		})
	}
}

func TestReviewTerminalStates(t *testing.T) {
	confirmed := true
	store := &fakeStore{orders: map[int]*domain.Order{
		1: {ID: 1, IsConfirmed: &confirmed},
	}}
	svc := NewService(store, logger.New("test"))

	if _, err := svc.Review(context.Background(), "req-1", 1, false); !errors.Is(err, domain.ErrOrderFinalized) {
		t.Fatalf("Review on finalized order error = %v, want ErrOrderFinalized", err)
	}
	if !*store.orders[1].IsConfirmed {
		t.Errorf("finalized order mutated by rejected transition")
	}
}

func TestReviewUnknownOrder(t *testing.T) {
	store := &fakeStore{orders: map[int]*domain.Order{}}
	svc := NewService(store, logger.New("test"))

	if _, err := svc.Review(context.Background(), "req-1", 42, true); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("Review error = %v, want ErrOrderNotFound", err)
	}
}

func TestReviewStoreFailureNotApplied(t *testing.T) {
	store := &fakeStore{
		orders:    map[int]*domain.Order{1: pendingOrder(1)},
		statusErr: errors.New("store down"),
	}
	svc := NewService(store, logger.New("test"))

	_, err := svc.Review(context.Background(), "req-1", 1, true)
	if err == nil {
		t.Fatalf("Review succeeded despite store failure")
	}
	if store.orders[1].IsConfirmed != nil {
		t.Errorf("order status changed despite store failure")
	}
}
