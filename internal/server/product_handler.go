package server

import (
	"context"
	"net/http"
	"time"

	"github.com/storefront/cart/internal/service"
	"go.uber.org/zap"
)

type ProductHandler struct {
	products service.ProductService
	logger   *zap.Logger
	timeout  time.Duration
}

func NewProductHandler(products service.ProductService, logger *zap.Logger, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
		timeout:  timeout,
	}
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := parseUUIDParam(w, r, "productID")
	if !ok {
		return
	}

	product, priceWithTax, err := h.products.GetProduct(ctx, productID)
	if err != nil {
		h.logger.Debug("get product failed",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(product, priceWithTax))
}
