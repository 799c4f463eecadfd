package domain

import "time"

// Product is a menu entry. Owned by the menu side; the cart and the
// coordinator treat it as immutable.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderStatus is the three-state view over the boolean-or-absent
// is_confirmed column: NULL = pending, true = confirmed, false = rejected.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusRejected  OrderStatus = "rejected"
)

// StatusOf maps the stored encoding to an OrderStatus.
func StatusOf(isConfirmed *bool) OrderStatus {
	switch {
	case isConfirmed == nil:
		return StatusPending
	case *isConfirmed:
		return StatusConfirmed
	default:
		return StatusRejected
	}
}

// Order is the persisted order header.
type Order struct {
	ID          int       `json:"id"`
	CustomerID  string    `json:"customer_id"`
	TableNumber int       `json:"table_number"`
	IsConfirmed *bool     `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Status derives the review state from the stored encoding.
func (o Order) Status() OrderStatus { return StatusOf(o.IsConfirmed) }

// OrderLine is one product+quantity row within an order header.
type OrderLine struct {
	ID        int `json:"id"`
	OrderID   int `json:"order_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}
