package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"campus-eats/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response. Conflict errors carry enough
// context for the caller to drive a UI decision.
type ErrorResponse struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	RestaurantID string `json:"restaurantId,omitempty"`
	ItemName     string `json:"itemName,omitempty"`
}

// writeJSON writes a JSON response with the given status code. Encode errors
// are unrecoverable here since the status line has already gone out.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a plain error response with the given status code.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: model.ErrCodeInternalError, Message: message})
}

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeItemUnavailable,
		model.ErrCodeEmptyCart,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidRating,
		model.ErrCodeInvalidVoucher,
		model.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	case model.ErrCodeCartNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeRestaurantConflict,
		model.ErrCodeStaleCartItem,
		model.ErrCodeInvalidOrderState:
		return http.StatusConflict
	case model.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a service-layer error into an HTTP response.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var conflict *model.RestaurantConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:        model.ErrCodeRestaurantConflict,
			Message:      err.Error(),
			RestaurantID: conflict.RestaurantID,
		})
		return
	}

	var stale *model.StaleCartItemError
	if errors.As(err, &stale) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:    model.ErrCodeStaleCartItem,
			Message:  err.Error(),
			ItemName: stale.ItemName,
		})
		return
	}

	var badStatus *model.InvalidStatusError
	if errors.As(err, &badStatus) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   model.ErrCodeInvalidStatus,
			Message: err.Error(),
		})
		return
	}

	var domain *model.DomainError
	if errors.As(err, &domain) {
		writeJSON(w, statusForCode(domain.Code), ErrorResponse{
			Error:   domain.Code,
			Message: domain.Message,
		})
		return
	}

	logger.Error().Err(err).Msg("unhandled service error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "internal error",
	})
}

// actorID extracts the calling user's identity. Session issuance lives
// outside this service; the gateway forwards the subject in a header.
func actorID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
