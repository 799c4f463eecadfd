package menu

import (
	"net/http"

	"tableside/internal/api"
	"tableside/internal/domain"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler { return &Handler{service: service} }

// List handles GET /api/v1/menu.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		api.WriteProblem(w, http.StatusInternalServerError, "menu_unavailable",
			"could not load the menu", api.RequestID(r))
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}
