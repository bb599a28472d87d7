package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is the record created from a validated cart. Items, total and
// restaurant are frozen at creation; only status, driver, rating and feedback
// may change afterwards. Orders are never deleted, only state-transitioned.
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	CustomerID    string      `json:"customerId" db:"customer_id"`
	RestaurantID  string      `json:"restaurantId" db:"restaurant_id"`
	DriverID      *string     `json:"driverId,omitempty" db:"driver_id"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total" db:"total"`
	DeliveryLat   float64     `json:"deliveryLat" db:"delivery_lat"`
	DeliveryLng   float64     `json:"deliveryLng" db:"delivery_lng"`
	PaymentMethod string      `json:"paymentMethod" db:"payment_method"`
	VoucherCode   *string     `json:"voucherCode,omitempty" db:"voucher_code"`
	Status        OrderStatus `json:"status" db:"status"`
	Rating        *int        `json:"rating,omitempty" db:"rating"`
	Feedback      *string     `json:"feedback,omitempty" db:"feedback"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item copied verbatim from the cart at checkout. The
// price is frozen for the life of the order.
type OrderItem struct {
	ID         uuid.UUID `json:"-" db:"id"`
	OrderID    uuid.UUID `json:"-" db:"order_id"`
	MenuItemID string    `json:"menuItemId" db:"menu_item_id"`
	Name       string    `json:"name" db:"name"`
	UnitPrice  float64   `json:"unitPrice" db:"unit_price"`
	Quantity   int       `json:"quantity" db:"quantity"`
}

// CheckoutRequest represents the request payload for converting the active
// cart into an order.
type CheckoutRequest struct {
	DeliveryLat   float64 `json:"deliveryLat"`
	DeliveryLng   float64 `json:"deliveryLng"`
	PaymentMethod string  `json:"paymentMethod"`
	VoucherCode   *string `json:"voucherCode,omitempty"`
}

// ChangeStatusRequest represents the request payload for a status transition.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AssignDriverRequest represents the request payload for driver assignment.
type AssignDriverRequest struct {
	DriverID string `json:"driverId"`
}

// FeedbackRequest represents the request payload for post-delivery feedback.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
