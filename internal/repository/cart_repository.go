package repository

import (
	"context"
	"errors"
	"fmt"

	"campus-eats/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Get retrieves the customer's active cart with its items.
func (r *cartRepository) Get(ctx context.Context, customerID string) (*model.Cart, error) {
	cartQuery := `
		SELECT customer_id, restaurant_id, total, created_at, updated_at
		FROM carts
		WHERE customer_id = $1
	`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, cartQuery, customerID).Scan(
		&cart.CustomerID,
		&cart.RestaurantID,
		&cart.Total,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCartNotFound
		}
		if ctx.Err() != nil {
			return nil, model.ErrUnavailable
		}
		r.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	itemsQuery := `
		SELECT menu_item_id, name, unit_price, quantity
		FROM cart_items
		WHERE customer_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, itemsQuery, customerID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, model.ErrUnavailable
		}
		r.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return &cart, nil
}

// Upsert writes the cart row and replaces its items in one transaction.
// Cart mutation is single-writer per customer, so a replace keeps the row and
// its lines consistent without per-line bookkeeping.
func (r *cartRepository) Upsert(ctx context.Context, cart *model.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return model.ErrUnavailable
		}
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cartQuery := `
		INSERT INTO carts (customer_id, restaurant_id, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id) DO UPDATE
		SET restaurant_id = EXCLUDED.restaurant_id,
		    total = EXCLUDED.total,
		    updated_at = EXCLUDED.updated_at
	`

	_, err = tx.Exec(ctx, cartQuery,
		cart.CustomerID, cart.RestaurantID, cart.Total, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", cart.CustomerID).Msg("failed to upsert cart")
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, cart.CustomerID); err != nil {
		r.logger.Error().Err(err).Str("customer_id", cart.CustomerID).Msg("failed to clear cart items")
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	itemQuery := `
		INSERT INTO cart_items (customer_id, menu_item_id, name, unit_price, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for i, item := range cart.Items {
		batch.Queue(itemQuery, cart.CustomerID, item.MenuItemID, item.Name, item.UnitPrice, item.Quantity, i)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(cart.Items); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("customer_id", cart.CustomerID).
				Str("menu_item_id", cart.Items[i].MenuItemID).
				Msg("failed to insert cart item")
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if ctx.Err() != nil {
			return model.ErrUnavailable
		}
		r.logger.Error().Err(err).Str("customer_id", cart.CustomerID).Msg("failed to commit cart upsert")
		return fmt.Errorf("failed to commit cart upsert: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", cart.CustomerID).
		Int("item_count", len(cart.Items)).
		Msg("cart written")

	return nil
}

// Delete removes the customer's cart and its items.
func (r *cartRepository) Delete(ctx context.Context, customerID string) error {
	// cart_items cascade on the carts foreign key
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE customer_id = $1`, customerID)
	if err != nil {
		if ctx.Err() != nil {
			return model.ErrUnavailable
		}
		r.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	r.logger.Debug().Str("customer_id", customerID).Msg("cart deleted")
	return nil
}

// DeleteTx removes the customer's cart within the provided transaction.
func (r *cartRepository) DeleteTx(ctx context.Context, tx pgx.Tx, customerID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM carts WHERE customer_id = $1`, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID).Msg("failed to delete cart in transaction")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
