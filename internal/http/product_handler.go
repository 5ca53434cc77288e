package http

import (
	"net/http"

	"github.com/rentfront/gateway/internal/rentalapi"
)

// ProductHandler proxies the rental catalog for the storefront grid.
type ProductHandler struct {
	api APIFactory
}

func NewProductHandler(api APIFactory) *ProductHandler {
	return &ProductHandler{api: api}
}

type ProductsResponse struct {
	Products []rentalapi.Product `json:"products"`
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	api := h.api(getSessionID(r.Context()))

	products, err := api.Products(r.Context())
	if err != nil {
		handleFlowError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ProductsResponse{Products: products})
}
