package events

import (
	"time"

	"campus-eats/internal/model"

	"github.com/google/uuid"
)

// Event types emitted on the order-events topic.
const (
	TypeOrderCreated   = "order.created"
	TypeStatusChanged  = "order.status_changed"
	TypeDriverAssigned = "order.driver_assigned"
)

// OrderEvent is the integration event published after an order mutation
// commits. Consumers are other backend services; client-facing status reads
// stay on the polling endpoint.
type OrderEvent struct {
	EventID      string            `json:"eventId"`
	Type         string            `json:"type"`
	OrderID      uuid.UUID         `json:"orderId"`
	CustomerID   string            `json:"customerId"`
	RestaurantID string            `json:"restaurantId"`
	DriverID     *string           `json:"driverId,omitempty"`
	Status       model.OrderStatus `json:"status"`
	Total        float64           `json:"total"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewOrderEvent builds an event of the given type from an order's current state.
func NewOrderEvent(eventType string, order *model.Order) OrderEvent {
	return OrderEvent{
		EventID:      uuid.New().String(),
		Type:         eventType,
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		RestaurantID: order.RestaurantID,
		DriverID:     order.DriverID,
		Status:       order.Status,
		Total:        order.Total,
		Timestamp:    time.Now().UTC(),
	}
}
