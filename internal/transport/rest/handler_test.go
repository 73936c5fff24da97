package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	storeerrors "github.com/avoronin/storefront/internal/errors"
	"github.com/avoronin/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStorefrontService is a mock implementation of the StorefrontService interface
type mockStorefrontService struct {
	product  *service.ProductDto
	variant  *service.VariantDto
	customer *service.CustomerDto
	seller   *service.SellerDto
	order    *service.OrderDto
	error    error
}

func (m *mockStorefrontService) CreateProduct(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	return m.product, m.error
}

func (m *mockStorefrontService) FindProductByID(_ context.Context, _ string) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockStorefrontService) UpdateProduct(_ context.Context, _ string, _ service.ProductUpdateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockStorefrontService) DeleteProductByID(_ context.Context, _ string) error {
	return m.error
}

func (m *mockStorefrontService) CreateVariant(_ context.Context, _ string, _ service.VariantCreateDto) (*service.VariantDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.variant, nil
}

func (m *mockStorefrontService) FindVariantByID(_ context.Context, _ string) (*service.VariantDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.variant, nil
}

func (m *mockStorefrontService) UpdateVariant(_ context.Context, _ string, _ service.VariantUpdateDto) (*service.VariantDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.variant, nil
}

func (m *mockStorefrontService) DeleteVariantByID(_ context.Context, _ string) error {
	return m.error
}

func (m *mockStorefrontService) CreateCustomer(_ context.Context, _ service.CustomerCreateDto) (*service.CustomerDto, error) {
	return m.customer, m.error
}

func (m *mockStorefrontService) FindCustomerByID(_ context.Context, _ string) (*service.CustomerDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.customer, nil
}

func (m *mockStorefrontService) UpdateCustomer(_ context.Context, _ string, _ service.CustomerUpdateDto) (*service.CustomerDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.customer, nil
}

func (m *mockStorefrontService) DeleteCustomerByID(_ context.Context, _ string) error {
	return m.error
}

func (m *mockStorefrontService) CreateSeller(_ context.Context, _ service.SellerCreateDto) (*service.SellerDto, error) {
	return m.seller, m.error
}

func (m *mockStorefrontService) FindSellerByID(_ context.Context, _ string) (*service.SellerDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.seller, nil
}

func (m *mockStorefrontService) UpdateSeller(_ context.Context, _ string, _ service.SellerUpdateDto) (*service.SellerDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.seller, nil
}

func (m *mockStorefrontService) DeleteSellerByID(_ context.Context, _ string) error {
	return m.error
}

func (m *mockStorefrontService) CreateOrder(_ context.Context, _ service.OrderCreateDto) (*service.OrderDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.order, nil
}

func (m *mockStorefrontService) FindOrderByID(_ context.Context, _ string) (*service.OrderDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.order, nil
}

func (m *mockStorefrontService) CancelOrder(_ context.Context, _ string) error {
	return m.error
}

// newTestRouter wires a handler around the mock service.
func newTestRouter(svc service.StorefrontService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := chi.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func Test_Handler_FindProduct(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockStorefrontService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product found",
			mockService: mockStorefrontService{
				product: &service.ProductDto{ID: "1", Name: "Shirt", Price: 1999, Variants: []service.VariantDto{}},
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Shirt"`,
		},
		{
			name:         "Error - product not found",
			mockService:  mockStorefrontService{error: storeerrors.ErrProductNotFound},
			expectedCode: http.StatusNotFound,
			expectedBody: `"error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodGet, "/api/v1/products/1", "")
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_Handler_CreateProduct(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockService  mockStorefrontService
		expectedCode int
	}{
		{
			name: "Success - product created",
			body: `{"name":"Shirt","price":1999}`,
			mockService: mockStorefrontService{
				product: &service.ProductDto{ID: "1", Name: "Shirt", Price: 1999},
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - missing name fails validation",
			body:         `{"price":1999}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - negative price fails validation",
			body:         `{"name":"Shirt","price":-1}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - malformed body",
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestRouter(&tc.mockService)
			rec := doRequest(t, mux, http.MethodPost, "/api/v1/products", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_Handler_CreateVariant(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockService  mockStorefrontService
		expectedCode int
	}{
		{
			name: "Success - variant created",
			body: `{"color":"red","size":"M","inventory_quantity":10}`,
			mockService: mockStorefrontService{
				variant: &service.VariantDto{ID: "1", ProductID: "1", Color: "red", Size: "M", InventoryQuantity: 10},
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - parent product not found",
			body:         `{"color":"red","size":"M"}`,
			mockService:  mockStorefrontService{error: storeerrors.ErrProductNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - missing color fails validation",
			body:         `{"size":"M"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestRouter(&tc.mockService)
			rec := doRequest(t, mux, http.MethodPost, "/api/v1/products/1/variants", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_Handler_CreateOrder(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockService  mockStorefrontService
		expectedCode int
	}{
		{
			name: "Success - order created",
			body: `{"customer_id":"1","lines":[{"product_id":"1","variant_id":"1","quantity":3}]}`,
			mockService: mockStorefrontService{
				order: &service.OrderDto{ID: "1", Customer: service.CustomerDto{ID: "1", Name: "Alice"}},
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - customer not found",
			body:         `{"customer_id":"42","lines":[{"product_id":"1","variant_id":"1","quantity":3}]}`,
			mockService:  mockStorefrontService{error: storeerrors.ErrCustomerNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - empty lines fail validation",
			body:         `{"customer_id":"1","lines":[]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - zero quantity fails validation",
			body:         `{"customer_id":"1","lines":[{"product_id":"1","variant_id":"1","quantity":0}]}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestRouter(&tc.mockService)
			rec := doRequest(t, mux, http.MethodPost, "/api/v1/orders", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_Handler_CancelOrder(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockStorefrontService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - order cancelled",
			mockService:  mockStorefrontService{},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":"1"}`,
		},
		{
			name:         "Error - order not found",
			mockService:  mockStorefrontService{error: storeerrors.ErrOrderNotFound},
			expectedCode: http.StatusNotFound,
			expectedBody: `"error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestRouter(&tc.mockService)
			rec := doRequest(t, mux, http.MethodDelete, "/api/v1/orders/1", "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_Handler_DeleteSeller(t *testing.T) {
	mux := newTestRouter(&mockStorefrontService{})
	rec := doRequest(t, mux, http.MethodDelete, "/api/v1/sellers/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1"}`, rec.Body.String())
}

func Test_Handler_HealthCheck(t *testing.T) {
	mux := newTestRouter(&mockStorefrontService{})
	rec := doRequest(t, mux, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
