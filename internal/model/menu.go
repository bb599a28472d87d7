package model

// MenuItemSnapshot is the catalogue's view of a menu item at a single point
// in time. It is a value read from the menu catalogue, used to price cart
// lines at add-time and to detect drift at checkout.
type MenuItemSnapshot struct {
	MenuItemID string  `json:"menuItemId" db:"id"`
	Name       string  `json:"name" db:"name"`
	Price      float64 `json:"price" db:"price"`
	InStock    bool    `json:"inStock" db:"in_stock"`
}
