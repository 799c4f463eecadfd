// Package review is the staff side: listing persisted orders and moving
// them from pending to confirmed or rejected.
package review

import (
	"context"

	"tableside/internal/domain"
	"tableside/internal/logger"
)

// Store is the slice of the order store the review flow needs.
type Store interface {
	GetOrder(ctx context.Context, orderID int) (domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID int, confirmed bool) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type ServiceInterface interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	Review(ctx context.Context, requestID string, orderID int, confirmed bool) (domain.Order, error)
}

type Service struct {
	store Store
	lg    *logger.Logger
}

func NewService(store Store, lg *logger.Logger) *Service {
	return &Service{store: store, lg: lg}
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.store.ListOrders(ctx)
}

// Review applies pending -> confirmed or pending -> rejected. Both target
// states are terminal; a second transition fails with ErrOrderFinalized
// and nothing is changed. The updated order is re-read only after the
// remote write succeeded, so a store failure leaves the caller's view
// untouched.
func (s *Service) Review(ctx context.Context, requestID string, orderID int, confirmed bool) (domain.Order, error) {
	if err := s.store.SetOrderStatus(ctx, orderID, confirmed); err != nil {
		s.lg.Error("order_review_failed", requestID, err, map[string]any{
			"order_id": orderID, "confirmed": confirmed,
		})
		return domain.Order{}, err
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	s.lg.Info("order_reviewed", requestID, map[string]any{
		"order_id": orderID, "status": string(order.Status()),
	})
	return order, nil
}
