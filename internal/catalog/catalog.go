package catalog

import (
	"context"

	"campus-eats/internal/model"
)

// Catalog provides read-only access to the menu catalogue. The engine only
// ever reads current price and availability; menu maintenance belongs to the
// restaurant-facing surfaces.
type Catalog interface {
	// GetMenuItem returns the current snapshot of a restaurant's menu item.
	// Returns model.ErrItemUnavailable if the item does not exist or does
	// not belong to the restaurant.
	GetMenuItem(ctx context.Context, restaurantID, menuItemID string) (*model.MenuItemSnapshot, error)
}
