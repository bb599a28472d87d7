package repository

import (
	"context"
	"errors"
	"fmt"

	"campus-eats/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, model.ErrUnavailable
		}
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, customer_id, restaurant_id, driver_id, total,
			delivery_lat, delivery_lng, payment_method, voucher_code,
			status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.CustomerID, order.RestaurantID, order.DriverID, order.Total,
		order.DeliveryLat, order.DeliveryLng, order.PaymentMethod, order.VoucherCode,
		order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created")

	return nil
}

// CreateOrderItems inserts the order's items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, menu_item_id, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.MenuItemID, item.Name, item.UnitPrice, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("menu_item_id", items[i].MenuItemID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created")

	return nil
}

// GetByID retrieves an order with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	orderQuery := `
		SELECT id, customer_id, restaurant_id, driver_id, total,
		       delivery_lat, delivery_lng, payment_method, voucher_code,
		       status, rating, feedback, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.RestaurantID,
		&order.DriverID,
		&order.Total,
		&order.DeliveryLat,
		&order.DeliveryLng,
		&order.PaymentMethod,
		&order.VoucherCode,
		&order.Status,
		&order.Rating,
		&order.Feedback,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		if ctx.Err() != nil {
			return nil, model.ErrUnavailable
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, menu_item_id, name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, model.ErrUnavailable
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, nil
}

// UpdateStatusGuard moves the order from one status to another in a single
// guarded statement. The WHERE clause on the current status makes concurrent
// writers serialise: the loser sees zero rows affected.
func (r *orderRepository) UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (int64, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		if ctx.Err() != nil {
			return 0, model.ErrUnavailable
		}
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("failed to update order status")
		return 0, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// AssignDriverGuard sets the order's driver while the order is in one of the
// allowed statuses. Touches only the driver column so it cannot interleave
// with a concurrent status change.
func (r *orderRepository) AssignDriverGuard(ctx context.Context, id uuid.UUID, driverID string, allowed []model.OrderStatus) (int64, error) {
	statuses := make([]string, len(allowed))
	for i, s := range allowed {
		statuses[i] = string(s)
	}

	query := `
		UPDATE orders
		SET driver_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	tag, err := r.pool.Exec(ctx, query, id, driverID, statuses)
	if err != nil {
		if ctx.Err() != nil {
			return 0, model.ErrUnavailable
		}
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("driver_id", driverID).
			Msg("failed to assign driver")
		return 0, fmt.Errorf("failed to assign driver: %w", err)
	}

	return tag.RowsAffected(), nil
}

// SetFeedbackGuard records rating and feedback for a delivered order owned by
// the customer.
func (r *orderRepository) SetFeedbackGuard(ctx context.Context, id uuid.UUID, customerID string, rating int, comment string) (int64, error) {
	query := `
		UPDATE orders
		SET rating = $3, feedback = $4, updated_at = NOW()
		WHERE id = $1 AND customer_id = $2 AND status = 'delivered'
	`

	tag, err := r.pool.Exec(ctx, query, id, customerID, rating, comment)
	if err != nil {
		if ctx.Err() != nil {
			return 0, model.ErrUnavailable
		}
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Msg("failed to record feedback")
		return 0, fmt.Errorf("failed to record feedback: %w", err)
	}

	return tag.RowsAffected(), nil
}
