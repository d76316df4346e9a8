package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/storefront/cart/internal/service"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts    service.CartService
	viewer   service.CartViewer
	products service.ProductService
	logger   *zap.Logger
	timeout  time.Duration
}

func NewCartHandler(
	carts service.CartService,
	viewer service.CartViewer,
	products service.ProductService,
	logger *zap.Logger,
	timeout time.Duration,
) *CartHandler {
	return &CartHandler{
		carts:    carts,
		viewer:   viewer,
		products: products,
		logger:   logger,
		timeout:  timeout,
	}
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	cart, err := h.carts.CreateCart(ctx)
	if err != nil {
		h.logger.Error("create cart failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateCartResponse{ID: cart.ID.String()})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	cartID, ok := parseUUIDParam(w, r, "cartID")
	if !ok {
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a UUID")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	item, err := h.carts.AddToCart(ctx, cartID, productID, req.Quantity)
	if err != nil {
		h.logger.Warn("add to cart failed",
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()),
			zap.Error(err))
		respondDomainError(w, err)
		return
	}

	// join the merged item with its product summary for the response
	product, _, err := h.products.GetProduct(ctx, productID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCartItemResponse(item, product))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	cartID, ok := parseUUIDParam(w, r, "cartID")
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(w, r, "productID")
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	item, err := h.carts.UpdateQuantity(ctx, cartID, productID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	product, _, err := h.products.GetProduct(ctx, productID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartItemResponse(item, product))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	cartID, ok := parseUUIDParam(w, r, "cartID")
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(w, r, "productID")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(ctx, cartID, productID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	cartID, ok := parseUUIDParam(w, r, "cartID")
	if !ok {
		return
	}

	view, err := h.viewer.GetCart(ctx, cartID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(view))
}

func (h *CartHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a UUID")
		return uuid.Nil, false
	}

	return id, true
}
