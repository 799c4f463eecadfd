package ordering

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tableside/internal/api"
	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/identity"
	"tableside/internal/services/menu"
)

// Handler owns the customer-facing flow: cart mutation and submission.
type Handler struct {
	sessions *cart.Sessions
	menu     menu.ServiceInterface
	service  ServiceInterface
	ident    identity.Provider
}

func NewHandler(sessions *cart.Sessions, menuSvc menu.ServiceInterface, service ServiceInterface, ident identity.Provider) *Handler {
	return &Handler{sessions: sessions, menu: menuSvc, service: service, ident: ident}
}

type cartItemView struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

func cartView(c *cart.Cart) map[string]any {
	lines := c.Lines()
	items := make([]cartItemView, 0, len(lines))
	for _, ln := range lines {
		items = append(items, cartItemView{
			ProductID: ln.Product.ID,
			Name:      ln.Product.Name,
			Price:     ln.Product.Price,
			Quantity:  ln.Quantity,
			Subtotal:  ln.Subtotal(),
		})
	}
	return map[string]any{
		"items":        items,
		"line_count":   c.LineCount(),
		"total_amount": c.Total(),
	}
}

// GetCart handles GET /api/v1/cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, cartView(h.sessions.Get(customerID)))
}

// AddItem handles POST /api/v1/cart/items. Each call adds one unit, the
// way the menu's add button does.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteProblem(w, http.StatusBadRequest, "bad_request", "invalid JSON body", api.RequestID(r))
		return
	}

	product, err := h.menu.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, menu.ErrProductNotFound) {
			api.WriteProblem(w, http.StatusNotFound, "product_not_found", "product is not on the menu", api.RequestID(r))
			return
		}
		api.WriteProblem(w, http.StatusInternalServerError, "menu_unavailable", "could not resolve product", api.RequestID(r))
		return
	}

	c := h.sessions.Get(customerID)
	c.Add(product)
	api.WriteJSON(w, http.StatusOK, cartView(c))
}

// RemoveItem handles DELETE /api/v1/cart/items/{product_id}.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(r.PathValue("product_id"))
	if err != nil {
		api.WriteProblem(w, http.StatusBadRequest, "bad_request", "product_id must be an integer", api.RequestID(r))
		return
	}
	c := h.sessions.Get(customerID)
	c.Remove(productID)
	api.WriteJSON(w, http.StatusOK, cartView(c))
}

// DiscardCart handles DELETE /api/v1/cart, the navigate-away case.
func (h *Handler) DiscardCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customer(w, r)
	if !ok {
		return
	}
	h.sessions.Discard(customerID)
	w.WriteHeader(http.StatusNoContent)
}

// SubmitOrder handles POST /api/v1/orders.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	requestID := api.RequestID(r)
	customerID := h.ident.CurrentCustomerID(r)

	var req domain.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteProblem(w, http.StatusBadRequest, "bad_request", "invalid JSON body", requestID)
		return
	}

	c := h.sessions.Get(customerID)
	resp, err := h.service.Submit(r.Context(), requestID, customerID, req.TableNumber, c)
	if err != nil {
		h.writeSubmitError(w, err, requestID)
		return
	}
	api.WriteJSON(w, http.StatusCreated, resp)
}

// writeSubmitError maps the submission taxonomy onto HTTP. Precondition
// and create failures are plain retries; a partial failure gets its own
// shape because retrying it would duplicate the order header.
func (h *Handler) writeSubmitError(w http.ResponseWriter, err error, requestID string) {
	var createErr *domain.OrderCreateError
	var partialErr *domain.PartialOrderError

	switch {
	case errors.Is(err, domain.ErrIdentityMissing):
		api.WriteProblem(w, http.StatusUnauthorized, "identity_missing",
			"customer identity not resolved, sign in and try again", requestID)
	case errors.Is(err, domain.ErrInvalidTable):
		api.WriteProblem(w, http.StatusBadRequest, "invalid_table",
			"table number must be a positive integer", requestID)
	case errors.Is(err, domain.ErrEmptyCart):
		api.WriteProblem(w, http.StatusBadRequest, "empty_cart",
			"cart has no lines, add something first", requestID)
	case errors.As(err, &createErr):
		api.WriteProblem(w, http.StatusBadGateway, "order_create_failed",
			"could not create the order, nothing was saved, try again", requestID)
	case errors.As(err, &partialErr):
		failed := make([]map[string]any, 0, len(partialErr.Failed))
		for _, f := range partialErr.Failed {
			failed = append(failed, map[string]any{
				"index": f.Index, "product_id": f.ProductID, "name": f.Name,
			})
		}
		msg := "order was saved incompletely, do not resubmit: staff will reconcile it"
		if partialErr.Compensated {
			msg = "order could not be saved completely and was rolled back, try again"
		}
		api.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"error":        "partial_order_failure",
			"message":      msg,
			"order_id":     partialErr.OrderID,
			"failed_lines": failed,
			"compensated":  partialErr.Compensated,
			"request_id":   requestID,
		})
	default:
		api.WriteProblem(w, http.StatusInternalServerError, "internal_error",
			"unexpected error", requestID)
	}
}

func (h *Handler) customer(w http.ResponseWriter, r *http.Request) (string, bool) {
	customerID := h.ident.CurrentCustomerID(r)
	if customerID == "" {
		api.WriteProblem(w, http.StatusUnauthorized, "identity_missing",
			"customer identity not resolved", api.RequestID(r))
		return "", false
	}
	return customerID, true
}
