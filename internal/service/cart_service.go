package service

import (
	"context"
	"time"

	"campus-eats/internal/cache"
	"campus-eats/internal/catalog"
	"campus-eats/internal/model"
	"campus-eats/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	catalog  catalog.Catalog
	cache    *cache.CartCache
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	cat catalog.Catalog,
	cartCache *cache.CartCache,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		catalog:  cat,
		cache:    cartCache,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart retrieves the customer's active cart, through the cart cache.
func (s *cartService) GetCart(ctx context.Context, customerID string) (*model.Cart, error) {
	if cart, ok := s.cache.Get(customerID); ok {
		return cart, nil
	}

	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(customerID, cart)
	return cart, nil
}

// AddItem adds a menu item to the customer's cart, creating the cart on
// first add.
func (s *cartService) AddItem(ctx context.Context, customerID string, req *model.AddItemRequest) (*model.Cart, error) {
	if req.Quantity <= 0 {
		s.logger.Warn().
			Str("customer_id", customerID).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	snap, err := s.catalog.GetMenuItem(ctx, req.RestaurantID, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if !snap.InStock {
		s.logger.Debug().
			Str("menu_item_id", req.MenuItemID).
			Msg("menu item out of stock")
		return nil, model.ErrItemUnavailable
	}

	now := time.Now()

	cart, err := s.cartRepo.Get(ctx, customerID)
	switch {
	case err == model.ErrCartNotFound:
		cart = &model.Cart{
			CustomerID:   customerID,
			RestaurantID: req.RestaurantID,
			CreatedAt:    now,
		}
	case err != nil:
		return nil, err
	case cart.RestaurantID != req.RestaurantID:
		// Conflict resolution is caller-driven: the existing cart is never
		// silently discarded.
		s.logger.Debug().
			Str("customer_id", customerID).
			Str("cart_restaurant_id", cart.RestaurantID).
			Str("requested_restaurant_id", req.RestaurantID).
			Msg("cross-restaurant add rejected")
		return nil, &model.RestaurantConflictError{RestaurantID: cart.RestaurantID}
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == req.MenuItemID {
			cart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			MenuItemID: snap.MenuItemID,
			Name:       snap.Name,
			UnitPrice:  snap.Price,
			Quantity:   req.Quantity,
		})
	}

	cart.Total = cart.ComputeTotal()
	cart.UpdatedAt = now

	if err := s.cartRepo.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.cache.Invalidate(customerID)

	s.logger.Info().
		Str("customer_id", customerID).
		Str("menu_item_id", req.MenuItemID).
		Int("quantity", req.Quantity).
		Int("item_count", len(cart.Items)).
		Msg("item added to cart")

	return cart, nil
}

// UpdateQuantity changes an existing cart line's quantity.
func (s *cartService) UpdateQuantity(ctx context.Context, customerID, menuItemID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == menuItemID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrItemUnavailable
	}

	cart.Total = cart.ComputeTotal()
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.cache.Invalidate(customerID)

	s.logger.Info().
		Str("customer_id", customerID).
		Str("menu_item_id", menuItemID).
		Int("quantity", quantity).
		Msg("cart line quantity updated")

	return cart, nil
}

// RemoveItem removes a cart line. Removing the last line deletes the cart
// entirely; an empty cart is never persisted.
func (s *cartService) RemoveItem(ctx context.Context, customerID, menuItemID string) (*model.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == menuItemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, model.ErrItemUnavailable
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if len(cart.Items) == 0 {
		if err := s.cartRepo.Delete(ctx, customerID); err != nil {
			return nil, err
		}
		s.cache.Invalidate(customerID)

		s.logger.Info().
			Str("customer_id", customerID).
			Msg("last line removed, cart deleted")
		return nil, nil
	}

	cart.Total = cart.ComputeTotal()
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.cache.Invalidate(customerID)

	s.logger.Info().
		Str("customer_id", customerID).
		Str("menu_item_id", menuItemID).
		Msg("cart line removed")

	return cart, nil
}

// ClearCart deletes the customer's cart, provided it belongs to the given
// restaurant. The restaurant check keeps the conflict-resolution handshake
// from deleting a cart the caller has not seen.
func (s *cartService) ClearCart(ctx context.Context, customerID, restaurantID string) error {
	cart, err := s.cartRepo.Get(ctx, customerID)
	if err == model.ErrCartNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	if cart.RestaurantID != restaurantID {
		return &model.RestaurantConflictError{RestaurantID: cart.RestaurantID}
	}

	if err := s.cartRepo.Delete(ctx, customerID); err != nil {
		return err
	}
	s.cache.Invalidate(customerID)

	s.logger.Info().
		Str("customer_id", customerID).
		Str("restaurant_id", cart.RestaurantID).
		Msg("cart cleared")

	return nil
}
