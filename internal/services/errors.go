// internal/services/errors.go
package services

import "errors"

// Business errors. Every failure a storefront operation can produce maps to
// one of these; handlers translate them with errors.Is so no business failure
// ever surfaces as a bare 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOutOfStock        = errors.New("product out of stock")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoSelectionPending = errors.New("no buy-now selection pending")

	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrPaymentMethodUnsupported is not a failure: the caller gets an
	// informational notice and the order is left untouched.
	ErrPaymentMethodUnsupported = errors.New("payment method not yet supported")
)
