package ordering

import (
	"context"
	"strconv"
	"sync"
	"time"

	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/services/notification"
)

type ServiceInterface interface {
	Submit(ctx context.Context, requestID, customerID, tableNumber string, c *cart.Cart) (domain.SubmitOrderResponse, error)
}

// Service is the order submission coordinator: a short saga over the
// header write, the fan-out line writes, and a detached staff
// notification.
type Service struct {
	repo     RepositoryInterface
	notifier notification.Notifier
	lg       *logger.Logger

	// lineTimeout bounds each line write; there is no way to abort a
	// dispatched write, an expired one just counts as failed.
	lineTimeout time.Duration

	// compensate switches on the best-effort header delete after a
	// partial failure. Off by default to match the source behavior.
	compensate bool
}

func NewService(repo RepositoryInterface, notifier notification.Notifier, lg *logger.Logger, lineTimeout time.Duration, compensate bool) *Service {
	if lineTimeout <= 0 {
		lineTimeout = 5 * time.Second
	}
	return &Service{repo: repo, notifier: notifier, lg: lg, lineTimeout: lineTimeout, compensate: compensate}
}

// Submit turns the cart plus a table number into a persisted order.
//
// Failure contract: precondition errors and OrderCreateError leave no
// remote state and are safe to retry. PartialOrderError means the header
// and some lines persisted; retrying would create a second header, so the
// error names the failed lines for manual reconciliation instead.
func (s *Service) Submit(ctx context.Context, requestID, customerID, tableNumber string, c *cart.Cart) (domain.SubmitOrderResponse, error) {
	if customerID == "" {
		return domain.SubmitOrderResponse{}, domain.ErrIdentityMissing
	}
	table, err := parseTableNumber(tableNumber)
	if err != nil {
		return domain.SubmitOrderResponse{}, err
	}
	lines := c.Lines()
	if len(lines) == 0 {
		return domain.SubmitOrderResponse{}, domain.ErrEmptyCart
	}
	total := c.Total()

	orderID, err := s.repo.CreateOrder(ctx, domain.OrderRequest{
		CustomerID:  customerID,
		TableNumber: table,
		IsConfirmed: false,
	})
	if err != nil {
		s.lg.Error("order_create_failed", requestID, err, map[string]any{"customer_id": customerID})
		return domain.SubmitOrderResponse{}, &domain.OrderCreateError{Err: err}
	}

	// Fired exactly once, as soon as the header exists. Not awaited, and
	// its outcome never reaches the submission result.
	s.notifier.Notify(notification.NewOrderPayload(orderID, table, lines))

	// Fan out one write per line, fan in over every result. Line writes
	// are independent of each other and outlive a canceled request.
	writeCtx := context.WithoutCancel(ctx)
	results := make([]error, len(lines))
	var wg sync.WaitGroup
	for i, ln := range lines {
		wg.Add(1)
		go func(i int, ln cart.Line) {
			defer wg.Done()
			lctx, cancel := context.WithTimeout(writeCtx, s.lineTimeout)
			defer cancel()
			_, err := s.repo.CreateOrderLine(lctx, domain.OrderLineRequest{
				OrderID:   orderID,
				ProductID: ln.Product.ID,
				Quantity:  ln.Quantity,
			})
			results[i] = err
		}(i, ln)
	}
	wg.Wait()

	var failed []domain.FailedLine
	for i, err := range results {
		if err != nil {
			failed = append(failed, domain.FailedLine{
				Index:     i,
				ProductID: lines[i].Product.ID,
				Name:      lines[i].Product.Name,
				Err:       err,
			})
		}
	}
	if len(failed) > 0 {
		perr := &domain.PartialOrderError{OrderID: orderID, Failed: failed}
		if s.compensate {
			if err := s.repo.DeleteOrder(writeCtx, orderID); err != nil {
				s.lg.Error("order_compensation_failed", requestID, err, map[string]any{"order_id": orderID})
			} else {
				perr.Compensated = true
			}
		}
		s.lg.Error("order_partial_failure", requestID, perr, map[string]any{
			"order_id": orderID, "failed_lines": len(failed), "compensated": perr.Compensated,
		})
		return domain.SubmitOrderResponse{}, perr
	}

	c.Clear()
	s.lg.Info("order_submitted", requestID, map[string]any{
		"order_id": orderID, "table_number": table, "lines": len(lines), "total_amount": total,
	})
	return domain.SubmitOrderResponse{
		OrderID:     orderID,
		Status:      string(domain.StatusPending),
		TotalAmount: total,
	}, nil
}

func parseTableNumber(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidTable
	}
	return n, nil
}
