package api

import (
	"net/http"
	"time"

	"tableside/internal/logger"
)

// Handlers collects the per-service HTTP surfaces the router mounts.
type Handlers struct {
	Menu interface {
		List(http.ResponseWriter, *http.Request)
	}
	Ordering interface {
		GetCart(http.ResponseWriter, *http.Request)
		AddItem(http.ResponseWriter, *http.Request)
		RemoveItem(http.ResponseWriter, *http.Request)
		DiscardCart(http.ResponseWriter, *http.Request)
		SubmitOrder(http.ResponseWriter, *http.Request)
	}
	Review interface {
		List(http.ResponseWriter, *http.Request)
		SetStatus(http.ResponseWriter, *http.Request)
	}
}

func Router(h Handlers, lg *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/menu", h.Menu.List)

	mux.HandleFunc("GET /api/v1/cart", h.Ordering.GetCart)
	mux.HandleFunc("POST /api/v1/cart/items", h.Ordering.AddItem)
	mux.HandleFunc("DELETE /api/v1/cart/items/{product_id}", h.Ordering.RemoveItem)
	mux.HandleFunc("DELETE /api/v1/cart", h.Ordering.DiscardCart)
	mux.HandleFunc("POST /api/v1/orders", h.Ordering.SubmitOrder)

	mux.HandleFunc("GET /api/v1/orders", h.Review.List)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/status", h.Review.SetStatus)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return WithLogging(lg, mux)
}
