package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeItemUnavailable    = "ITEM_UNAVAILABLE"
	ErrCodeRestaurantConflict = "RESTAURANT_CONFLICT"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeCartNotFound       = "CART_NOT_FOUND"
	ErrCodeStaleCartItem      = "STALE_CART_ITEM"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatus      = "INVALID_STATUS_VALUE"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeInvalidVoucher     = "INVALID_VOUCHER_CODE"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidOrderState  = "INVALID_ORDER_STATE"
	ErrCodeUnavailable        = "UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation surfaced to the caller.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrItemUnavailable   = NewDomainError(ErrCodeItemUnavailable, "Menu item does not exist or is out of stock")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "No active cart to check out")
	ErrCartNotFound      = NewDomainError(ErrCodeCartNotFound, "No active cart for this customer")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidVoucher    = NewDomainError(ErrCodeInvalidVoucher, "Voucher code is not valid")
	ErrInvalidRating     = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Actor is not allowed to perform this operation")
	ErrInvalidOrderState = NewDomainError(ErrCodeInvalidOrderState, "Order is not in a state that allows this operation")
	ErrUnavailable       = NewDomainError(ErrCodeUnavailable, "Downstream dependency timed out or is unreachable")
)

// RestaurantConflictError is returned when an add-to-cart targets a different
// restaurant than the customer's active cart. It carries the blocking
// restaurant's identity so the caller can offer a "replace cart" resolution.
type RestaurantConflictError struct {
	RestaurantID string
}

func (e *RestaurantConflictError) Error() string {
	return fmt.Sprintf("cart is locked to restaurant %s", e.RestaurantID)
}

// StaleCartItemError is returned at checkout when a cart line's stored
// price/availability snapshot no longer matches the live catalogue.
type StaleCartItemError struct {
	ItemName string
}

func (e *StaleCartItemError) Error() string {
	return fmt.Sprintf("cart item %q has changed since it was added", e.ItemName)
}

// InvalidStatusError is returned when a requested order status is not one of
// the known status values.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("unknown order status %q", e.Value)
}
