package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"campus-eats/internal/model"
	"campus-eats/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and order-related HTTP requests.
type OrderHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(checkout service.CheckoutService, orders service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/checkout requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customerID := actorID(r)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "paymentMethod is required", h.logger)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), customerID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ChangeStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req model.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.orders.ChangeStatus(r.Context(), orderID, req.Status, actor)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// AssignDriver handles PATCH /api/orders/{id}/driver requests.
func (h *OrderHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req model.AssignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.DriverID == "" {
		writeError(w, http.StatusBadRequest, "driverId is required", h.logger)
		return
	}

	order, err := h.orders.AssignDriver(r.Context(), orderID, req.DriverID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// SubmitFeedback handles POST /api/orders/{id}/feedback requests.
func (h *OrderHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	customerID := actorID(r)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req model.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.orders.SubmitFeedback(r.Context(), orderID, customerID, req.Rating, req.Comment); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// orderIDFromPath parses the order id segment of /api/orders/{id}[/...].
// Writes the error response itself when the id is missing or malformed.
func (h *OrderHandler) orderIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	const prefix = "/api/orders/"
	path := strings.TrimPrefix(r.URL.Path, prefix)
	if path == r.URL.Path || path == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return uuid.Nil, false
	}

	idStr := path
	if i := strings.IndexByte(path, '/'); i >= 0 {
		idStr = path[:i]
	}

	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}

	return orderID, true
}
