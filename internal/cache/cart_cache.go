package cache

import (
	"time"

	"campus-eats/internal/model"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

// CartCache is a read-through cache for cart reads, keyed by customer id.
// It is populated only by the cart read path and invalidated synchronously by
// every cart mutation, so a successful mutation is never followed by a stale
// read. Orders are never cached.
type CartCache struct {
	lru    *expirable.LRU[string, *model.Cart]
	logger zerolog.Logger
}

// New creates a cart cache with the given capacity and entry TTL.
func New(maxSize int, ttl time.Duration, logger zerolog.Logger) *CartCache {
	return &CartCache{
		lru:    expirable.NewLRU[string, *model.Cart](maxSize, nil, ttl),
		logger: logger.With().Str("component", "cart-cache").Logger(),
	}
}

// Get returns the cached cart for the customer, if present and not expired.
// The returned cart is a copy; callers may mutate it freely.
func (c *CartCache) Get(customerID string) (*model.Cart, bool) {
	cart, ok := c.lru.Get(customerID)
	if !ok {
		return nil, false
	}
	c.logger.Debug().Str("customer_id", customerID).Msg("cart cache hit")
	return clone(cart), true
}

// Set stores a copy of the cart under the customer's key.
func (c *CartCache) Set(customerID string, cart *model.Cart) {
	c.lru.Add(customerID, clone(cart))
}

// Invalidate drops the customer's cache entry. Called by every cart mutation
// before it returns success.
func (c *CartCache) Invalidate(customerID string) {
	if c.lru.Remove(customerID) {
		c.logger.Debug().Str("customer_id", customerID).Msg("cart cache entry invalidated")
	}
}

// Len returns the number of live entries.
func (c *CartCache) Len() int {
	return c.lru.Len()
}

// clone copies a cart so cached state never aliases caller-visible state.
func clone(cart *model.Cart) *model.Cart {
	if cart == nil {
		return nil
	}
	out := *cart
	out.Items = make([]model.CartItem, len(cart.Items))
	copy(out.Items, cart.Items)
	return &out
}
