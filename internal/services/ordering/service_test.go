package ordering

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/services/notification"
)

type fakeStore struct {
	mu sync.Mutex

	createErr    error
	orders       []domain.OrderRequest
	lineAttempts []domain.OrderLineRequest
	failProducts map[int]error
	deleted      []int
	deleteErr    error
}

func (f *fakeStore) CreateOrder(ctx context.Context, req domain.OrderRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.orders = append(f.orders, req)
	return 100 + len(f.orders), nil
}

func (f *fakeStore) CreateOrderLine(ctx context.Context, req domain.OrderLineRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lineAttempts = append(f.lineAttempts, req)
	if err, ok := f.failProducts[req.ProductID]; ok {
		return 0, err
	}
	return len(f.lineAttempts), nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, orderID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, orderID)
	return nil
}

func (f *fakeStore) GetOrder(ctx context.Context, orderID int) (domain.Order, error) {
	return domain.Order{}, domain.ErrOrderNotFound
}

func (f *fakeStore) SetOrderStatus(ctx context.Context, orderID int, confirmed bool) error {
	return nil
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]domain.Order, error) { return nil, nil }

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []domain.NotificationPayload
}

func (f *fakeNotifier) Notify(p domain.NotificationPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type failingChannel struct{}

func (failingChannel) Send(ctx context.Context, p domain.NotificationPayload) error {
	return errors.New("push relay down")
}

func newFailingTrigger(t *testing.T) notification.Notifier {
	t.Helper()
	return notification.NewTrigger(failingChannel{}, logger.New("test"))
}

func threeLineCart() *cart.Cart {
	c := cart.New()
	c.Add(domain.Product{ID: 1, Name: "Soup", Price: 4.50})
	c.Add(domain.Product{ID: 2, Name: "Kebab", Price: 12.00})
	c.Add(domain.Product{ID: 2, Name: "Kebab", Price: 12.00})
	c.Add(domain.Product{ID: 3, Name: "Tea", Price: 1.25})
	return c
}

func newService(store *fakeStore, n *fakeNotifier, compensate bool) *Service {
	return NewService(store, n, logger.New("test"), time.Second, compensate)
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := newService(store, notifier, false)
	c := threeLineCart()

	resp, err := svc.Submit(context.Background(), "req-1", "cust-1", "7", c)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(store.orders) != 1 {
		t.Fatalf("header writes = %d, want exactly 1", len(store.orders))
	}
	hdr := store.orders[0]
	if hdr.CustomerID != "cust-1" || hdr.TableNumber != 7 || hdr.IsConfirmed {
		t.Errorf("header = %+v", hdr)
	}
	if len(store.lineAttempts) != 3 {
		t.Fatalf("line writes = %d, want exactly 3", len(store.lineAttempts))
	}
	for _, ln := range store.lineAttempts {
		if ln.OrderID != resp.OrderID {
			t.Errorf("line %+v does not reference order %d", ln, resp.OrderID)
		}
	}
	if c.LineCount() != 0 {
		t.Errorf("cart not cleared after success: %d lines", c.LineCount())
	}
	if resp.Status != "pending" {
		t.Errorf("status = %q, want pending", resp.Status)
	}
	want := 4.50 + 2*12.00 + 1.25
	if resp.TotalAmount != want {
		t.Errorf("total = %v, want %v", resp.TotalAmount, want)
	}
	if notifier.count() != 1 {
		t.Errorf("notification attempts = %d, want exactly 1", notifier.count())
	}
}

func TestSubmitPreconditions(t *testing.T) {
	tests := []struct {
		name       string
		customerID string
		table      string
		cart       *cart.Cart
		wantErr    error
	}{
		{"missing identity", "", "7", threeLineCart(), domain.ErrIdentityMissing},
		{"table zero", "cust-1", "0", threeLineCart(), domain.ErrInvalidTable},
		{"table empty", "cust-1", "", threeLineCart(), domain.ErrInvalidTable},
		{"table negative", "cust-1", "-2", threeLineCart(), domain.ErrInvalidTable},
		{"table not a number", "cust-1", "abc", threeLineCart(), domain.ErrInvalidTable},
		{"empty cart", "cust-1", "7", cart.New(), domain.ErrEmptyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			notifier := &fakeNotifier{}
			svc := newService(store, notifier, false)

			_, err := svc.Submit(context.Background(), "req-1", tt.customerID, tt.table, tt.cart)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit error = %v, want %v", err, tt.wantErr)
			}
			if len(store.orders) != 0 || len(store.lineAttempts) != 0 {
				t.Errorf("remote calls made on precondition failure: %d headers, %d lines",
					len(store.orders), len(store.lineAttempts))
			}
			if notifier.count() != 0 {
				t.Errorf("notification fired on precondition failure")
			}
		})
	}
}

func TestSubmitHeaderFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	svc := newService(store, notifier, false)
	c := threeLineCart()

	_, err := svc.Submit(context.Background(), "req-1", "cust-1", "7", c)

	var createErr *domain.OrderCreateError
	if !errors.As(err, &createErr) {
		t.Fatalf("Submit error = %v, want OrderCreateError", err)
	}
	if len(store.lineAttempts) != 0 {
		t.Errorf("line writes attempted after header failure: %d", len(store.lineAttempts))
	}
	if c.LineCount() != 3 {
		t.Errorf("cart changed after header failure: %d lines", c.LineCount())
	}
	if notifier.count() != 0 {
		t.Errorf("notification fired without a created header")
	}
}

func TestSubmitPartialFailure(t *testing.T) {
	store := &fakeStore{failProducts: map[int]error{2: errors.New("timeout")}}
	notifier := &fakeNotifier{}
	svc := newService(store, notifier, false)
	c := threeLineCart()

	_, err := svc.Submit(context.Background(), "req-1", "cust-1", "7", c)

	var partial *domain.PartialOrderError
	if !errors.As(err, &partial) {
		t.Fatalf("Submit error = %v, want PartialOrderError", err)
	}
	if len(partial.Failed) != 1 {
		t.Fatalf("failed lines = %d, want 1", len(partial.Failed))
	}
	if f := partial.Failed[0]; f.ProductID != 2 || f.Name != "Kebab" {
		t.Errorf("failed line = %+v, want product 2 (Kebab)", f)
	}
	if len(store.lineAttempts) != 3 {
		t.Errorf("line attempts = %d, want all 3 attempted", len(store.lineAttempts))
	}
	if c.LineCount() != 3 {
		t.Errorf("cart cleared on partial failure: %d lines", c.LineCount())
	}
	if len(store.deleted) != 0 {
		t.Errorf("header compensated without the policy enabled")
	}
	if partial.Compensated {
		t.Errorf("Compensated = true without the policy enabled")
	}
	if notifier.count() != 1 {
		t.Errorf("notification attempts = %d, want exactly 1", notifier.count())
	}
}

func TestSubmitPartialFailureWithCompensation(t *testing.T) {
	store := &fakeStore{failProducts: map[int]error{3: errors.New("timeout")}}
	svc := newService(store, &fakeNotifier{}, true)

	_, err := svc.Submit(context.Background(), "req-1", "cust-1", "7", threeLineCart())

	var partial *domain.PartialOrderError
	if !errors.As(err, &partial) {
		t.Fatalf("Submit error = %v, want PartialOrderError", err)
	}
	if !partial.Compensated {
		t.Errorf("Compensated = false with the policy enabled")
	}
	if len(store.deleted) != 1 || store.deleted[0] != partial.OrderID {
		t.Errorf("deleted = %v, want [%d]", store.deleted, partial.OrderID)
	}
}

func TestSubmitCompensationDeleteFailureStillPartial(t *testing.T) {
	store := &fakeStore{
		failProducts: map[int]error{1: errors.New("timeout")},
		deleteErr:    errors.New("store down"),
	}
	svc := newService(store, &fakeNotifier{}, true)

	_, err := svc.Submit(context.Background(), "req-1", "cust-1", "7", threeLineCart())

	var partial *domain.PartialOrderError
	if !errors.As(err, &partial) {
		t.Fatalf("Submit error = %v, want PartialOrderError", err)
	}
	if partial.Compensated {
		t.Errorf("Compensated = true although the delete failed")
	}
}

// A broken notification channel must not leak into the submission result.
func TestSubmitSucceedsWhenNotificationFails(t *testing.T) {
	store := &fakeStore{}
	trigger := newFailingTrigger(t)
	svc := NewService(store, trigger, logger.New("test"), time.Second, false)
	c := threeLineCart()

	resp, err := svc.Submit(context.Background(), "req-1", "cust-1", "7", c)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if resp.OrderID == 0 {
		t.Errorf("response order id missing")
	}
	if c.LineCount() != 0 {
		t.Errorf("cart not cleared: %d lines", c.LineCount())
	}
}

func TestParseTableNumber(t *testing.T) {
	if n, err := parseTableNumber("12"); err != nil || n != 12 {
		t.Errorf("parseTableNumber(12) = %d, %v", n, err)
	}
	for _, raw := range []string{"", "0", "-1", "7.5", "seven"} {
		if _, err := parseTableNumber(raw); !errors.Is(err, domain.ErrInvalidTable) {
			t.Errorf("parseTableNumber(%q) error = %v, want ErrInvalidTable", raw, err)
		}
	}
}
