package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"campus-eats/internal/model"
	"campus-eats/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID := actorID(r)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	cart, err := h.service.GetCart(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID := actorID(r)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	var req model.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.RestaurantID == "" || req.MenuItemID == "" {
		writeError(w, http.StatusBadRequest, "restaurantId and menuItemId are required", h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), customerID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// UpdateItem handles PUT /api/cart/items/{itemId} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	customerID := actorID(r)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	itemID := itemIDFromPath(r.URL.Path)
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "item ID is required", h.logger)
		return
	}

	var req model.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), customerID, itemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{itemId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID := actorID(r)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	itemID := itemIDFromPath(r.URL.Path)
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "item ID is required", h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), customerID, itemID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if cart == nil {
		// Last line removed; the cart no longer exists.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart requests. The restaurantId query parameter
// guards the conflict-resolution handshake.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID := actorID(r)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required", h.logger)
		return
	}

	restaurantID := r.URL.Query().Get("restaurantId")
	if restaurantID == "" {
		writeError(w, http.StatusBadRequest, "restaurantId query parameter is required", h.logger)
		return
	}

	if err := h.service.ClearCart(r.Context(), customerID, restaurantID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemIDFromPath extracts the item id from /api/cart/items/{itemId}.
func itemIDFromPath(path string) string {
	const prefix = "/api/cart/items/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.Trim(path[len(prefix):], "/")
}
