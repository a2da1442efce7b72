package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/available_products"
)

// ProductHandler serves the product picker for the discount forms.
type ProductHandler struct {
	availableQuery *available_products.Query
	logger         *zap.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(availableQuery *available_products.Query, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		availableQuery: availableQuery,
		logger:         logger,
	}
}

type productResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
}

type availableProductsResponse struct {
	Products []productResponse `json:"products"`
}

// Available handles GET /admin/products/available. The exclude query param
// carries the discount being edited, keeping its own products selectable.
func (h *ProductHandler) Available(w http.ResponseWriter, r *http.Request) {
	refs, err := h.availableQuery.Execute(r.Context(), &available_products.Request{
		ExcludeDiscountID: r.URL.Query().Get("exclude"),
	})
	if err != nil {
		h.logger.Error("available products failed", zap.Error(err))
		writeError(w, err)
		return
	}

	products := make([]productResponse, 0, len(refs))
	for _, ref := range refs {
		products = append(products, productResponse{
			ProductID: ref.ID,
			Name:      ref.Name,
			Active:    ref.Active,
		})
	}

	writeJSON(w, http.StatusOK, availableProductsResponse{Products: products})
}
