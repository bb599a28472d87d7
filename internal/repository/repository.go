package repository

import (
	"context"

	"campus-eats/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CartRepository defines the interface for cart data access operations.
// A customer has at most one cart row; items hang off it by customer id.
type CartRepository interface {
	// Get retrieves the customer's active cart with its items.
	// Returns model.ErrCartNotFound if no cart exists.
	Get(ctx context.Context, customerID string) (*model.Cart, error)

	// Upsert writes the cart row and replaces its items in one transaction.
	Upsert(ctx context.Context, cart *model.Cart) error

	// Delete removes the customer's cart and its items.
	Delete(ctx context.Context, customerID string) error

	// DeleteTx removes the customer's cart within the provided transaction.
	// Used by checkout so order creation and cart deletion commit together.
	DeleteTx(ctx context.Context, tx pgx.Tx, customerID string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items.
	// Returns model.ErrOrderNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// UpdateStatusGuard moves the order from one status to another in a
	// single guarded statement. Returns the number of rows affected; zero
	// means the order was not in the expected status anymore.
	UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (int64, error)

	// AssignDriverGuard sets the order's driver while the order is in one of
	// the allowed statuses. Returns the number of rows affected.
	AssignDriverGuard(ctx context.Context, id uuid.UUID, driverID string, allowed []model.OrderStatus) (int64, error)

	// SetFeedbackGuard records rating and feedback for a delivered order
	// owned by the customer. Returns the number of rows affected.
	SetFeedbackGuard(ctx context.Context, id uuid.UUID, customerID string, rating int, comment string) (int64, error)
}
