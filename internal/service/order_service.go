package service

import (
	"context"

	"campus-eats/internal/directory"
	"campus-eats/internal/events"
	"campus-eats/internal/model"
	"campus-eats/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// driverAssignable are the statuses during which a driver may be attached.
// Assignment is only meaningful once the order is ready for pickup and before
// it reaches a terminal state.
var driverAssignable = []model.OrderStatus{
	model.StatusReady,
	model.StatusPicked,
	model.StatusEnRoute,
}

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	directory directory.Directory
	producer  events.Producer
	logger    zerolog.Logger
}

// NewOrderService creates a new order lifecycle service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	dir directory.Directory,
	producer events.Producer,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		directory: dir,
		producer:  producer,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// GetOrder retrieves an order with its items. Order reads are never cached so
// status polling always sees the latest write.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// ChangeStatus applies a status transition on behalf of an actor. The write
// is guarded on the status the actor saw, so a concurrent transition makes
// the slower writer fail instead of silently winning.
func (s *orderService) ChangeStatus(ctx context.Context, id uuid.UUID, target, actorID string) (*model.Order, error) {
	status, err := model.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	role, err := s.directory.GetRole(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !role.CanSetStatus(status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("actor_id", actorID).
			Str("role", string(role)).
			Str("target", target).
			Msg("actor not eligible for status value")
		return nil, model.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("current", string(order.Status)).
			Str("target", target).
			Msg("illegal status transition")
		return nil, model.ErrInvalidOrderState
	}

	affected, err := s.orderRepo.UpdateStatusGuard(ctx, id, order.Status, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// A concurrent writer moved the order first.
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("expected", string(order.Status)).
			Str("target", target).
			Msg("status transition lost to concurrent writer")
		return nil, model.ErrInvalidOrderState
	}

	order.Status = status
	s.producer.Publish(ctx, events.NewOrderEvent(events.TypeStatusChanged, order))

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", target).
		Str("actor_id", actorID).
		Str("role", string(role)).
		Msg("order status changed")

	return order, nil
}

// AssignDriver attaches a driver to an order that has reached ready. The
// assignment touches only the driver column, guarded on the assignable
// statuses, so it cannot race a concurrent status change into a torn write.
func (s *orderService) AssignDriver(ctx context.Context, id uuid.UUID, driverID string) (*model.Order, error) {
	role, err := s.directory.GetRole(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleDriver {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("driver_id", driverID).
			Str("role", string(role)).
			Msg("assignee is not a driver")
		return nil, model.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	assignable := false
	for _, st := range driverAssignable {
		if order.Status == st {
			assignable = true
			break
		}
	}
	if !assignable {
		return nil, model.ErrInvalidOrderState
	}

	affected, err := s.orderRepo.AssignDriverGuard(ctx, id, driverID, driverAssignable)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, model.ErrInvalidOrderState
	}

	order.DriverID = &driverID
	s.producer.Publish(ctx, events.NewOrderEvent(events.TypeDriverAssigned, order))

	s.logger.Info().
		Str("order_id", id.String()).
		Str("driver_id", driverID).
		Msg("driver assigned")

	return order, nil
}

// SubmitFeedback records the owning customer's rating and comment on a
// delivered order. A repeat call overwrites the previous feedback.
func (s *orderService) SubmitFeedback(ctx context.Context, id uuid.UUID, customerID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return model.ErrInvalidRating
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if order.CustomerID != customerID {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("customer_id", customerID).
			Msg("feedback from non-owner rejected")
		return model.ErrForbidden
	}

	if order.Status != model.StatusDelivered {
		return model.ErrInvalidOrderState
	}

	affected, err := s.orderRepo.SetFeedbackGuard(ctx, id, customerID, rating, comment)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrInvalidOrderState
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Int("rating", rating).
		Msg("feedback recorded")

	return nil
}
