package service

import (
	"context"

	"campus-eats/internal/model"

	"github.com/google/uuid"
)

// CartService owns all cart mutation and the single-restaurant invariant.
type CartService interface {
	// GetCart retrieves the customer's active cart, through the cart cache.
	GetCart(ctx context.Context, customerID string) (*model.Cart, error)

	// AddItem adds a menu item to the customer's cart, creating the cart on
	// first add. Adding across restaurants fails with a
	// RestaurantConflictError and leaves the cart untouched.
	AddItem(ctx context.Context, customerID string, req *model.AddItemRequest) (*model.Cart, error)

	// UpdateQuantity changes an existing cart line's quantity.
	UpdateQuantity(ctx context.Context, customerID, menuItemID string, quantity int) (*model.Cart, error)

	// RemoveItem removes a cart line. Removing the last line deletes the
	// cart entirely; the returned cart is nil in that case.
	RemoveItem(ctx context.Context, customerID, menuItemID string) (*model.Cart, error)

	// ClearCart deletes the customer's cart, provided it belongs to the
	// given restaurant. Clearing when no cart exists is a no-op.
	ClearCart(ctx context.Context, customerID, restaurantID string) error
}

// CheckoutService converts a validated cart into an order.
type CheckoutService interface {
	// Checkout re-validates every cart line against the live catalogue and,
	// on full agreement, creates a pending order and deletes the cart in
	// one unit. Any drift aborts with a StaleCartItemError and no writes.
	Checkout(ctx context.Context, customerID string, req *model.CheckoutRequest) (*model.Order, error)
}

// OrderService owns all post-creation order mutation.
type OrderService interface {
	// GetOrder retrieves an order with its items. Never cached.
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ChangeStatus applies a status transition on behalf of an actor,
	// enforcing the known-value, role-eligibility and current-to-target
	// edge rules.
	ChangeStatus(ctx context.Context, id uuid.UUID, target, actorID string) (*model.Order, error)

	// AssignDriver attaches a driver to an order that has reached ready.
	AssignDriver(ctx context.Context, id uuid.UUID, driverID string) (*model.Order, error)

	// SubmitFeedback records the owning customer's rating and comment on a
	// delivered order.
	SubmitFeedback(ctx context.Context, id uuid.UUID, customerID string, rating int, comment string) error
}
