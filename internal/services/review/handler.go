package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableside/internal/api"
	"tableside/internal/domain"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler { return &Handler{service: service} }

type orderView struct {
	ID          int    `json:"id"`
	CustomerID  string `json:"customer_id"`
	TableNumber int    `json:"table_number"`
	IsConfirmed *bool  `json:"is_confirmed"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func toView(o domain.Order) orderView {
	return orderView{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		TableNumber: o.TableNumber,
		IsConfirmed: o.IsConfirmed,
		Status:      string(o.Status()),
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/v1/orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		api.WriteProblem(w, http.StatusInternalServerError, "orders_unavailable",
			"could not load orders", api.RequestID(r))
		return
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toView(o))
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"orders": views})
}

// SetStatus handles POST /api/v1/orders/{order_id}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	requestID := api.RequestID(r)

	orderID, err := strconv.Atoi(r.PathValue("order_id"))
	if err != nil {
		api.WriteProblem(w, http.StatusBadRequest, "bad_request", "order_id must be an integer", requestID)
		return
	}

	var req domain.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsConfirmed == nil {
		api.WriteProblem(w, http.StatusBadRequest, "bad_request",
			"body must set is_confirmed to true or false", requestID)
		return
	}

	order, err := h.service.Review(r.Context(), requestID, orderID, *req.IsConfirmed)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			api.WriteProblem(w, http.StatusNotFound, "order_not_found", "no such order", requestID)
		case errors.Is(err, domain.ErrOrderFinalized):
			api.WriteProblem(w, http.StatusConflict, "order_finalized",
				"order was already confirmed or rejected", requestID)
		default:
			api.WriteProblem(w, http.StatusBadGateway, "status_update_failed",
				"could not update the order, its status is unchanged", requestID)
		}
		return
	}
	api.WriteJSON(w, http.StatusOK, toView(order))
}
