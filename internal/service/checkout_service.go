package service

import (
	"context"
	"fmt"
	"time"

	"campus-eats/internal/cache"
	"campus-eats/internal/catalog"
	"campus-eats/internal/events"
	"campus-eats/internal/model"
	"campus-eats/internal/repository"
	"campus-eats/internal/voucher"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	catalog   catalog.Catalog
	vouchers  voucher.Validator // nil when voucher validation is disabled
	cache     *cache.CartCache
	producer  events.Producer
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	cat catalog.Catalog,
	vouchers voucher.Validator,
	cartCache *cache.CartCache,
	producer events.Producer,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		catalog:   cat,
		vouchers:  vouchers,
		cache:     cartCache,
		producer:  producer,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout re-validates every cart line against the live catalogue and, on
// full agreement, creates a pending order and deletes the cart in one
// transaction. Validate-then-commit: if any line drifted, nothing is written
// and the cart is left untouched for the customer to adjust.
func (s *checkoutService) Checkout(ctx context.Context, customerID string, req *model.CheckoutRequest) (*model.Order, error) {
	cart, err := s.cartRepo.Get(ctx, customerID)
	if err == model.ErrCartNotFound {
		return nil, model.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	if req.VoucherCode != nil && *req.VoucherCode != "" {
		if s.vouchers == nil {
			return nil, model.ErrInvalidVoucher
		}
		if err := s.vouchers.Validate(ctx, *req.VoucherCode); err != nil {
			s.logger.Warn().
				Str("customer_id", customerID).
				Err(err).
				Msg("invalid voucher code")
			return nil, err
		}
	}

	for _, line := range cart.Items {
		snap, err := s.catalog.GetMenuItem(ctx, cart.RestaurantID, line.MenuItemID)
		if err == model.ErrItemUnavailable {
			s.logger.Info().
				Str("customer_id", customerID).
				Str("menu_item_id", line.MenuItemID).
				Msg("cart line vanished from catalogue")
			return nil, &model.StaleCartItemError{ItemName: line.Name}
		}
		if err != nil {
			return nil, err
		}
		if !snap.InStock || snap.Price != line.UnitPrice {
			s.logger.Info().
				Str("customer_id", customerID).
				Str("menu_item_id", line.MenuItemID).
				Float64("snapshot_price", line.UnitPrice).
				Float64("live_price", snap.Price).
				Bool("in_stock", snap.InStock).
				Msg("cart line drifted from catalogue")
			return nil, &model.StaleCartItemError{ItemName: line.Name}
		}
	}

	now := time.Now()
	order := &model.Order{
		ID:            uuid.New(),
		CustomerID:    cart.CustomerID,
		RestaurantID:  cart.RestaurantID,
		Total:         cart.Total,
		DeliveryLat:   req.DeliveryLat,
		DeliveryLng:   req.DeliveryLng,
		PaymentMethod: req.PaymentMethod,
		VoucherCode:   req.VoucherCode,
		Status:        model.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	order.Items = make([]model.OrderItem, len(cart.Items))
	for i, line := range cart.Items {
		order.Items[i] = model.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = s.cartRepo.DeleteTx(ctx, tx, customerID); err != nil {
		return nil, fmt.Errorf("failed to delete cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit checkout")
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	s.cache.Invalidate(customerID)
	s.producer.Publish(ctx, events.NewOrderEvent(events.TypeOrderCreated, order))

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("customer_id", customerID).
		Str("restaurant_id", order.RestaurantID).
		Float64("total", order.Total).
		Int("item_count", len(order.Items)).
		Msg("order created from cart")

	return order, nil
}
