package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordererrors "github.com/lojadev/pedidos/internal/errors"
	"github.com/lojadev/pedidos/internal/service"
)

// mockOrderService is a mock implementation of the OrderService interface
type mockOrderService struct {
	order  *service.OrderDto
	orders []service.OrderDto
	error  error
	called bool
}

func (m *mockOrderService) Create(_ context.Context, _ service.OrderCreateDto) (*service.OrderDto, error) {
	m.called = true
	if m.error != nil {
		return nil, m.error
	}
	return m.order, nil
}

func (m *mockOrderService) FindByID(_ context.Context, _ string) (*service.OrderDto, error) {
	m.called = true
	if m.error != nil {
		return nil, m.error
	}
	return m.order, nil
}

func (m *mockOrderService) FindAll(_ context.Context) (*[]service.OrderDto, error) {
	m.called = true
	if m.error != nil {
		return nil, m.error
	}
	return &m.orders, nil
}

func (m *mockOrderService) UpdateValue(_ context.Context, _ string, _ service.OrderUpdateDto) (*service.OrderDto, error) {
	m.called = true
	if m.error != nil {
		return nil, m.error
	}
	return m.order, nil
}

func (m *mockOrderService) Delete(_ context.Context, _ string) error {
	m.called = true
	return m.error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func orderDto() *service.OrderDto {
	return &service.OrderDto{
		OrderID:      "p1",
		Value:        dec("100.50"),
		CreationDate: "2023-01-01T00:00:00Z",
		Items:        []service.OrderItemDto{{ProductID: "i1", Quantity: 2, Price: dec("50.25")}},
	}
}

const validCreateBody = `{
	"numeroPedido": "p1",
	"valorTotal": 100.50,
	"dataCriacao": "2023-01-01T00:00:00Z",
	"items": [{"idItem": "i1", "quantidadeItem": 2, "valorItem": 50.25}]
}`

func Test_OrderAPI_Create(t *testing.T) {
	testCases := []struct {
		name              string
		mockService       mockOrderService
		body              string
		expectedCode      int
		expectedBody      string
		expectServiceSkip bool
	}{
		{
			name:         "Success - order created",
			mockService:  mockOrderService{order: orderDto()},
			body:         validCreateBody,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, orderDto()),
		},
		{
			name:              "Error - invalid JSON body",
			mockService:       mockOrderService{},
			body:              "{not json",
			expectedCode:      http.StatusBadRequest,
			expectedBody:      toJSON(t, ErrorResponse{Error: "Invalid request body"}),
			expectServiceSkip: true,
		},
		{
			name:              "Error - empty items list",
			mockService:       mockOrderService{},
			body:              `{"numeroPedido": "p1", "valorTotal": 100.50, "dataCriacao": "2023-01-01T00:00:00Z", "items": []}`,
			expectedCode:      http.StatusBadRequest,
			expectedBody:      `{"validation_errors": {"Items": "failed on rule: gt"}}`,
			expectServiceSkip: true,
		},
		{
			name:              "Error - missing order number",
			mockService:       mockOrderService{},
			body:              `{"valorTotal": 100.50, "dataCriacao": "2023-01-01T00:00:00Z", "items": [{"idItem": "i1", "quantidadeItem": 1, "valorItem": 1}]}`,
			expectedCode:      http.StatusBadRequest,
			expectedBody:      `{"validation_errors": {"NumeroPedido": "failed on rule: required"}}`,
			expectServiceSkip: true,
		},
		{
			name:              "Error - creation date not RFC3339",
			mockService:       mockOrderService{},
			body:              `{"numeroPedido": "p1", "valorTotal": 100.50, "dataCriacao": "01/01/2023", "items": [{"idItem": "i1", "quantidadeItem": 1, "valorItem": 1}]}`,
			expectedCode:      http.StatusBadRequest,
			expectedBody:      `{"validation_errors": {"DataCriacao": "failed on rule: datetime"}}`,
			expectServiceSkip: true,
		},
		{
			name:              "Error - item quantity below one",
			mockService:       mockOrderService{},
			body:              `{"numeroPedido": "p1", "valorTotal": 100.50, "dataCriacao": "2023-01-01T00:00:00Z", "items": [{"idItem": "i1", "quantidadeItem": 0, "valorItem": 1}]}`,
			expectedCode:      http.StatusBadRequest,
			expectedBody:      `{"validation_errors": {"QuantidadeItem": "failed on rule: required"}}`,
			expectServiceSkip: true,
		},
		{
			name:         "Error - order already exists",
			mockService:  mockOrderService{error: ordererrors.ErrOrderAlreadyExists},
			body:         validCreateBody,
			expectedCode: http.StatusConflict,
			expectedBody: toJSON(t, ErrorResponse{Error: "Order with ID p1 already exists"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockOrderService{error: errors.New("connection refused")},
			body:         validCreateBody,
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to create order"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			// when
			api.Create(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			if tc.expectServiceSkip {
				assert.False(t, tc.mockService.called, "service should not be called")
			}
		})
	}
}

func Test_OrderAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockOrderService
		orderID      string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - order found",
			mockService:  mockOrderService{order: orderDto()},
			orderID:      "p1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, orderDto()),
		},
		{
			name:         "Error - order not found",
			mockService:  mockOrderService{error: ordererrors.ErrOrderNotFound},
			orderID:      "missing",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Order with ID missing not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockOrderService{error: errors.New("connection refused")},
			orderID:      "p1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve order with ID p1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/order/"+tc.orderID, nil)
			req.SetPathValue("id", tc.orderID)
			rr := httptest.NewRecorder()

			// when
			api.FindByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_OrderAPI_FindAll(t *testing.T) {
	listed := []service.OrderDto{
		{OrderID: "p1", Value: dec("10"), CreationDate: "2023-01-01T00:00:00Z"},
		{OrderID: "p2", Value: dec("20"), CreationDate: "2023-01-02T00:00:00Z"},
	}

	testCases := []struct {
		name         string
		mockService  mockOrderService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - orders found",
			mockService:  mockOrderService{orders: listed},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, listed),
		},
		{
			name:         "Success - empty list",
			mockService:  mockOrderService{orders: []service.OrderDto{}},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name:         "Error - service error",
			mockService:  mockOrderService{error: errors.New("connection refused")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to fetch orders"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/order/list", nil)
			rr := httptest.NewRecorder()

			// when
			api.FindAll(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_OrderAPI_FindAll_ExcludesItems(t *testing.T) {
	api := NewHandler(&mockOrderService{orders: []service.OrderDto{
		{OrderID: "p1", Value: dec("10"), CreationDate: "2023-01-01T00:00:00Z"},
	}}, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/order/list", nil)
	rr := httptest.NewRecorder()

	api.FindAll(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "items")
}

func Test_OrderAPI_Update(t *testing.T) {
	updated := &service.OrderDto{OrderID: "p1", Value: dec("200.00"), CreationDate: "2023-01-01T00:00:00Z"}

	testCases := []struct {
		name         string
		mockService  mockOrderService
		orderID      string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - value updated",
			mockService:  mockOrderService{order: updated},
			orderID:      "p1",
			body:         `{"valorTotal": 200.00}`,
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, updated),
		},
		{
			name:         "Error - missing value",
			mockService:  mockOrderService{},
			orderID:      "p1",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors": {"ValorTotal": "failed on rule: required"}}`,
		},
		{
			name:         "Error - order not found",
			mockService:  mockOrderService{error: ordererrors.ErrOrderNotFound},
			orderID:      "missing",
			body:         `{"valorTotal": 200.00}`,
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Order with ID missing not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockOrderService{error: errors.New("connection refused")},
			orderID:      "p1",
			body:         `{"valorTotal": 200.00}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to update order with ID p1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPut, "/order/"+tc.orderID, strings.NewReader(tc.body))
			req.SetPathValue("id", tc.orderID)
			rr := httptest.NewRecorder()

			// when
			api.Update(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_OrderAPI_Delete(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockOrderService
		orderID      string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - delete acknowledged",
			mockService:  mockOrderService{},
			orderID:      "p1",
			expectedCode: http.StatusOK,
			expectedBody: `{"message": "Order with ID p1 deleted"}`,
		},
		{
			name:         "Success - absent order still acknowledged",
			mockService:  mockOrderService{},
			orderID:      "missing",
			expectedCode: http.StatusOK,
			expectedBody: `{"message": "Order with ID missing deleted"}`,
		},
		{
			name:         "Error - service error",
			mockService:  mockOrderService{error: errors.New("connection refused")},
			orderID:      "p1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to delete order with ID p1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodDelete, "/order/"+tc.orderID, nil)
			req.SetPathValue("id", tc.orderID)
			rr := httptest.NewRecorder()

			// when
			api.Delete(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_OrderAPI_HealthCheck(t *testing.T) {
	api := NewHandler(&mockOrderService{}, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	api.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
