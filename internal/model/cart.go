package model

import "time"

// Cart is a customer's in-progress selection of menu items. A customer has at
// most one active cart at a time and all of its items belong to a single
// restaurant.
type Cart struct {
	CustomerID   string     `json:"customerId" db:"customer_id"`
	RestaurantID string     `json:"restaurantId" db:"restaurant_id"`
	Items        []CartItem `json:"items"`
	Total        float64    `json:"total" db:"total"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// CartItem is a single cart line. Name and UnitPrice are a snapshot taken at
// add-time, not a live reference into the catalogue; drift against the live
// menu is only detected at checkout.
type CartItem struct {
	MenuItemID string  `json:"menuItemId" db:"menu_item_id"`
	Name       string  `json:"name" db:"name"`
	UnitPrice  float64 `json:"unitPrice" db:"unit_price"`
	Quantity   int     `json:"quantity" db:"quantity"`
}

// LineTotal returns the item's contribution to the cart total.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// ComputeTotal recomputes the cart total from its current items.
func (c *Cart) ComputeTotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// AddItemRequest represents the request payload for adding an item to the cart.
type AddItemRequest struct {
	RestaurantID string `json:"restaurantId"`
	MenuItemID   string `json:"menuItemId"`
	Quantity     int    `json:"quantity"`
}

// UpdateQuantityRequest represents the request payload for changing a cart
// line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
