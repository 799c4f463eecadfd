package domain

import "time"

// OrderRequest is the header write issued by the coordinator. IsConfirmed
// is always false at submission time; review happens later.
type OrderRequest struct {
	CustomerID  string `json:"customer_id"`
	TableNumber int    `json:"table_number"`
	IsConfirmed bool   `json:"is_confirmed"`
}

// OrderLineRequest is one line write, referencing the header id returned
// by the order creation.
type OrderLineRequest struct {
	OrderID   int `json:"order_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// SubmitOrderRequest is the HTTP body for a submission. The table number
// arrives as free text from the UI and is validated by the coordinator.
type SubmitOrderRequest struct {
	TableNumber string `json:"table_number"`
}

type SubmitOrderResponse struct {
	OrderID     int     `json:"order_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// ReviewRequest flips an order's status. A JSON null is rejected at the
// handler; only explicit true/false transitions exist.
type ReviewRequest struct {
	IsConfirmed *bool `json:"is_confirmed"`
}

// NotificationItem is one cart line in the staff notification, priced at
// submission time.
type NotificationItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// NotificationPayload is the structured staff alert. Built once from the
// cart snapshot at submission time, never persisted.
type NotificationPayload struct {
	OrderID     int                `json:"order_id"`
	Title       string             `json:"title"`
	Body        string             `json:"body"`
	Items       []NotificationItem `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	TableNumber int                `json:"table_number"`
	Timestamp   time.Time          `json:"timestamp"`
}
