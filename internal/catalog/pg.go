package catalog

import (
	"context"
	"errors"
	"fmt"

	"campus-eats/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgCatalog implements Catalog against the menu_items table.
type pgCatalog struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPgCatalog creates a new PostgreSQL-backed menu catalogue accessor.
func NewPgCatalog(pool *pgxpool.Pool, logger zerolog.Logger) Catalog {
	return &pgCatalog{
		pool:   pool,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// GetMenuItem returns the current snapshot of a restaurant's menu item.
func (c *pgCatalog) GetMenuItem(ctx context.Context, restaurantID, menuItemID string) (*model.MenuItemSnapshot, error) {
	query := `
		SELECT id, name, price, in_stock
		FROM menu_items
		WHERE restaurant_id = $1 AND id = $2
	`

	var snap model.MenuItemSnapshot
	err := c.pool.QueryRow(ctx, query, restaurantID, menuItemID).Scan(
		&snap.MenuItemID,
		&snap.Name,
		&snap.Price,
		&snap.InStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Debug().
				Str("restaurant_id", restaurantID).
				Str("menu_item_id", menuItemID).
				Msg("menu item not found")
			return nil, model.ErrItemUnavailable
		}
		if ctx.Err() != nil {
			return nil, model.ErrUnavailable
		}
		c.logger.Error().
			Err(err).
			Str("menu_item_id", menuItemID).
			Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return &snap, nil
}
