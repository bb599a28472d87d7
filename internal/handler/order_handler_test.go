package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-eats/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, customerID string, req *model.CheckoutRequest) (*model.Order, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ChangeStatus(ctx context.Context, id uuid.UUID, target, actorID string) (*model.Order, error) {
	args := m.Called(ctx, id, target, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) AssignDriver(ctx context.Context, id uuid.UUID, driverID string) (*model.Order, error) {
	args := m.Called(ctx, id, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) SubmitFeedback(ctx context.Context, id uuid.UUID, customerID string, rating int, comment string) error {
	args := m.Called(ctx, id, customerID, rating, comment)
	return args.Error(0)
}

func sampleOrder(status model.OrderStatus) *model.Order {
	return &model.Order{
		ID:           uuid.New(),
		CustomerID:   "C001",
		RestaurantID: "R001",
		Total:        30.00,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestOrderHandler_Checkout_Success(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	order := sampleOrder(model.StatusPending)
	mockCheckout.On("Checkout", mock.Anything, "C001", mock.AnythingOfType("*model.CheckoutRequest")).Return(order, nil)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.CheckoutRequest{PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "C001")
	rec := httptest.NewRecorder()

	h.Checkout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestOrderHandler_Checkout_MissingPaymentMethod(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.CheckoutRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "C001")
	rec := httptest.NewRecorder()

	h.Checkout(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockCheckout.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_Checkout_StaleCartItem(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	mockCheckout.On("Checkout", mock.Anything, "C001", mock.AnythingOfType("*model.CheckoutRequest")).
		Return(nil, &model.StaleCartItemError{ItemName: "Pad Thai"})

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.CheckoutRequest{PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "C001")
	rec := httptest.NewRecorder()

	h.Checkout(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeStaleCartItem, resp.Error)
	assert.Equal(t, "Pad Thai", resp.ItemName)
}

func TestOrderHandler_Checkout_EmptyCart(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	mockCheckout.On("Checkout", mock.Anything, "C001", mock.AnythingOfType("*model.CheckoutRequest")).
		Return(nil, model.ErrEmptyCart)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.CheckoutRequest{PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "C001")
	rec := httptest.NewRecorder()

	h.Checkout(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_GetByID_Success(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	order := sampleOrder(model.StatusAccepted)
	mockOrders.On("GetOrder", mock.Anything, order.ID).Return(order, nil)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID.String(), nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderHandler_GetByID_InvalidID(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockOrders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	orderID := uuid.New()
	mockOrders.On("GetOrder", mock.Anything, orderID).Return(nil, model.ErrOrderNotFound)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_ChangeStatus_Success(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	order := sampleOrder(model.StatusAccepted)
	mockOrders.On("ChangeStatus", mock.Anything, order.ID, "accepted", "REST01").Return(order, nil)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.ChangeStatusRequest{Status: "accepted"})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+order.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "REST01")
	rec := httptest.NewRecorder()

	h.ChangeStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockOrders.AssertExpectations(t)
}

func TestOrderHandler_ChangeStatus_Forbidden(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	orderID := uuid.New()
	mockOrders.On("ChangeStatus", mock.Anything, orderID, "picked", "REST01").Return(nil, model.ErrForbidden)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.ChangeStatusRequest{Status: "picked"})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "REST01")
	rec := httptest.NewRecorder()

	h.ChangeStatus(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrderHandler_ChangeStatus_IllegalTransition(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	orderID := uuid.New()
	mockOrders.On("ChangeStatus", mock.Anything, orderID, "delivered", "D001").Return(nil, model.ErrInvalidOrderState)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.ChangeStatusRequest{Status: "delivered"})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "D001")
	rec := httptest.NewRecorder()

	h.ChangeStatus(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrderHandler_ChangeStatus_UnknownStatusValue(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	orderID := uuid.New()
	mockOrders.On("ChangeStatus", mock.Anything, orderID, "shipped", "REST01").
		Return(nil, &model.InvalidStatusError{Value: "shipped"})

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.ChangeStatusRequest{Status: "shipped"})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "REST01")
	rec := httptest.NewRecorder()

	h.ChangeStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInvalidStatus, resp.Error)
}

func TestOrderHandler_AssignDriver_Success(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	order := sampleOrder(model.StatusReady)
	driverID := "D001"
	order.DriverID = &driverID
	mockOrders.On("AssignDriver", mock.Anything, order.ID, "D001").Return(order, nil)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.AssignDriverRequest{DriverID: "D001"})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+order.ID.String()+"/driver", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.AssignDriver(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.NotNil(t, got.DriverID)
	assert.Equal(t, "D001", *got.DriverID)
}

func TestOrderHandler_AssignDriver_MissingDriverID(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.AssignDriverRequest{})
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+uuid.New().String()+"/driver", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.AssignDriver(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockOrders.AssertNotCalled(t, "AssignDriver", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_SubmitFeedback_Success(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	orderID := uuid.New()
	mockOrders.On("SubmitFeedback", mock.Anything, orderID, "C001", 5, "great food").Return(nil)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.FeedbackRequest{Rating: 5, Comment: "great food"})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/feedback", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "C001")
	rec := httptest.NewRecorder()

	h.SubmitFeedback(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockOrders.AssertExpectations(t)
}

func TestOrderHandler_SubmitFeedback_NotDelivered(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)

	orderID := uuid.New()
	mockOrders.On("SubmitFeedback", mock.Anything, orderID, "C001", 4, "").Return(model.ErrInvalidOrderState)

	h := NewOrderHandler(mockCheckout, mockOrders, zerolog.Nop())

	body, _ := json.Marshal(model.FeedbackRequest{Rating: 4})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/feedback", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "C001")
	rec := httptest.NewRecorder()

	h.SubmitFeedback(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
