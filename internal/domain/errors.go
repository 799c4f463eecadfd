package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Precondition failures. No remote call has happened when these are
// returned, so a plain retry is always safe.
var (
	ErrIdentityMissing = errors.New("customer identity not resolved")
	ErrInvalidTable    = errors.New("table number must be a positive integer")
	ErrEmptyCart       = errors.New("cart has no lines")
)

// ErrOrderFinalized is returned when a review transition targets an order
// that is already confirmed or rejected.
var ErrOrderFinalized = errors.New("order already reviewed")

// ErrOrderNotFound is returned for review or lookup of an unknown order id.
var ErrOrderNotFound = errors.New("order not found")

// OrderCreateError wraps a failed header write. No partial state exists;
// retrying the whole submission is safe.
type OrderCreateError struct {
	Err error
}

func (e *OrderCreateError) Error() string {
	return fmt.Sprintf("order create failed: %v", e.Err)
}

func (e *OrderCreateError) Unwrap() error { return e.Err }

// FailedLine identifies one order-line write that did not commit.
type FailedLine struct {
	Index     int
	ProductID int
	Name      string
	Err       error
}

// PartialOrderError reports a submission where the header and zero or more
// lines persisted but at least one line write failed. Blind retry would
// duplicate the header, so the caller must surface this distinctly
// instead of retrying.
type PartialOrderError struct {
	OrderID     int
	Failed      []FailedLine
	Compensated bool
}

func (e *PartialOrderError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		names = append(names, f.Name)
	}
	return fmt.Sprintf("order %d incomplete: %d line(s) failed (%s)",
		e.OrderID, len(e.Failed), strings.Join(names, ", "))
}
