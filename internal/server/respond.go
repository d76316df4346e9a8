package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storefront/cart/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondDomainError maps the domain taxonomy onto HTTP statuses: validation
// to 400, not-found to 404, duplicates to 409, exhausted transient conflicts
// to 503.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", domain.ErrInvalidQuantity.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", domain.ErrProductNotFound.Error())
	case errors.Is(err, domain.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "cart_not_found", domain.ErrCartNotFound.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", domain.ErrItemNotFound.Error())
	case errors.Is(err, domain.ErrDuplicateItem):
		respondError(w, http.StatusConflict, "duplicate_item", domain.ErrDuplicateItem.Error())
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusServiceUnavailable, "conflict_exhausted", "temporary storage contention, retry the request")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
