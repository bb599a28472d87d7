package model

// OrderStatus is a step in the order delivery lifecycle.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPicked    OrderStatus = "picked"
	StatusEnRoute   OrderStatus = "en_route"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// forward holds the single legal forward edge out of each status.
var forward = map[OrderStatus]OrderStatus{
	StatusPending:   StatusAccepted,
	StatusAccepted:  StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusPicked,
	StatusPicked:    StatusEnRoute,
	StatusEnRoute:   StatusDelivered,
}

// ParseStatus validates a raw status value. Unknown values return an
// InvalidStatusError.
func ParseStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case StatusPending, StatusAccepted, StatusPreparing, StatusReady,
		StatusPicked, StatusEnRoute, StatusDelivered, StatusCanceled:
		return s, nil
	default:
		return "", &InvalidStatusError{Value: raw}
	}
}

// IsTerminal reports whether the status ends the lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// CanTransition reports whether target is reachable from s via a single legal
// edge: the next forward step, or cancellation from any non-terminal state.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if target == StatusCanceled {
		return !s.IsTerminal()
	}
	return forward[s] == target
}

// Role identifies the kind of actor a user is, as recorded in the user
// directory.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDriver     Role = "driver"
	RoleAdmin      Role = "admin"
)

// restaurantSettable are the status values a restaurant actor may apply.
var restaurantSettable = map[OrderStatus]bool{
	StatusAccepted:  true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusCanceled:  true,
}

// driverSettable are the status values a driver actor may apply.
var driverSettable = map[OrderStatus]bool{
	StatusPicked:    true,
	StatusEnRoute:   true,
	StatusDelivered: true,
}

// CanSetStatus reports whether the role is eligible to apply the given status
// value. Admins may apply any value; whether the edge itself is legal is
// checked separately via CanTransition.
func (r Role) CanSetStatus(target OrderStatus) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleRestaurant:
		return restaurantSettable[target]
	case RoleDriver:
		return driverSettable[target]
	default:
		return false
	}
}
