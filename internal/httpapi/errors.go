package httpapi

import (
	"errors"
	"net/http"

	cartapp "storefront/internal/cart/app"
	catalogapp "storefront/internal/catalog/app"
	checkoutapp "storefront/internal/checkout/app"
	orderapp "storefront/internal/order/app"
	"storefront/internal/storage"
)

// mapError collapses internal errors into the four user-visible kinds:
// correctable bad requests (empty cart, insufficient stock, invalid input),
// missing entities, invalid admin transitions, and a generic failure that
// leaks no storage detail.
func mapError(err error) (int, string) {
	var stockErr *catalogapp.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return http.StatusBadRequest, stockErr.Error()
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "Cart is empty"
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, orderapp.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// checkoutError keeps checkout failures distinguishable where the shopper
// can act on them: empty cart and insufficient stock get specific messages,
// anything else is a generic checkout failure.
func checkoutError(err error) (int, string) {
	var stockErr *catalogapp.InsufficientStockError
	switch {
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "Cart is empty"
	case errors.As(err, &stockErr):
		return http.StatusBadRequest, stockErr.Error()
	default:
		return http.StatusInternalServerError, "checkout failed"
	}
}
