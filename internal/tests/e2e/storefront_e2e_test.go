// Package e2e provides end-to-end tests for the storefront application.
// The actual application handler is run in an `httptest.Server` with a fresh
// in-memory store per test, and every request goes through the full HTTP
// stack: routing, middleware, validation and the facade service.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avoronin/storefront/internal/app"
	"github.com/avoronin/storefront/internal/service"
	"github.com/avoronin/storefront/pkg/messaging"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StorefrontE2ESuite struct {
	suite.Suite
	server     *httptest.Server
	httpClient *http.Client
}

func (s *StorefrontE2ESuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := app.SetupDependencies(messaging.NoopPublisher{}, logger)
	s.server = httptest.NewServer(app.SetupHttpHandler(deps))
	s.httpClient = s.server.Client()
}

func (s *StorefrontE2ESuite) TearDownTest() {
	s.server.Close()
}

// do sends a JSON request and decodes the response body into out (when out is non-nil).
func (s *StorefrontE2ESuite) do(method, path string, payload any, out any) int {
	s.T().Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(s.T(), err)
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.server.URL+path, body)
	require.NoError(s.T(), err)
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// TestOrderLifecycle walks the whole flow: catalog setup, order placement
// with inventory decrement, cancellation with inventory restore.
func (s *StorefrontE2ESuite) TestOrderLifecycle() {
	var product service.ProductDto
	code := s.do(http.MethodPost, "/api/v1/products",
		service.ProductCreateDto{Name: "Shirt", Price: 100}, &product)
	require.Equal(s.T(), http.StatusCreated, code)

	var variant service.VariantDto
	code = s.do(http.MethodPost, fmt.Sprintf("/api/v1/products/%s/variants", product.ID),
		service.VariantCreateDto{Color: "red", Size: "M", InventoryQuantity: 10}, &variant)
	require.Equal(s.T(), http.StatusCreated, code)

	var customer service.CustomerDto
	code = s.do(http.MethodPost, "/api/v1/customers",
		service.CustomerCreateDto{Name: "Alice", Email: "alice@example.com"}, &customer)
	require.Equal(s.T(), http.StatusCreated, code)

	var order service.OrderDto
	code = s.do(http.MethodPost, "/api/v1/orders", service.OrderCreateDto{
		CustomerID: customer.ID,
		Lines:      []service.OrderLineDto{{ProductID: product.ID, VariantID: variant.ID, Quantity: 3}},
	}, &order)
	require.Equal(s.T(), http.StatusCreated, code)
	require.Equal(s.T(), customer.ID, order.Customer.ID)

	var afterOrder service.VariantDto
	code = s.do(http.MethodGet, "/api/v1/variants/"+variant.ID, nil, &afterOrder)
	require.Equal(s.T(), http.StatusOK, code)
	require.Equal(s.T(), int32(7), afterOrder.InventoryQuantity)

	code = s.do(http.MethodDelete, "/api/v1/orders/"+order.ID, nil, nil)
	require.Equal(s.T(), http.StatusOK, code)

	var afterCancel service.VariantDto
	code = s.do(http.MethodGet, "/api/v1/variants/"+variant.ID, nil, &afterCancel)
	require.Equal(s.T(), http.StatusOK, code)
	require.Equal(s.T(), int32(10), afterCancel.InventoryQuantity)

	code = s.do(http.MethodGet, "/api/v1/orders/"+order.ID, nil, nil)
	require.Equal(s.T(), http.StatusNotFound, code)
}

// TestProductExpansion verifies that a product read includes its variants.
func (s *StorefrontE2ESuite) TestProductExpansion() {
	var product service.ProductDto
	code := s.do(http.MethodPost, "/api/v1/products",
		service.ProductCreateDto{Name: "Shirt", Description: "Cotton", Price: 1999}, &product)
	require.Equal(s.T(), http.StatusCreated, code)

	var variant service.VariantDto
	code = s.do(http.MethodPost, fmt.Sprintf("/api/v1/products/%s/variants", product.ID),
		service.VariantCreateDto{Color: "blue", Size: "L", InventoryQuantity: 4}, &variant)
	require.Equal(s.T(), http.StatusCreated, code)

	var found service.ProductDto
	code = s.do(http.MethodGet, "/api/v1/products/"+product.ID, nil, &found)
	require.Equal(s.T(), http.StatusOK, code)
	require.Len(s.T(), found.Variants, 1)
	require.Equal(s.T(), variant.ID, found.Variants[0].ID)
}

// TestOrderForUnknownCustomer verifies the not-found mapping and that no
// order is created as a side effect.
func (s *StorefrontE2ESuite) TestOrderForUnknownCustomer() {
	code := s.do(http.MethodPost, "/api/v1/orders", service.OrderCreateDto{
		CustomerID: "42",
		Lines:      []service.OrderLineDto{{ProductID: "1", VariantID: "1", Quantity: 1}},
	}, nil)
	require.Equal(s.T(), http.StatusNotFound, code)
}

// TestCustomerOrdersExpansion verifies that a customer read lists their orders.
func (s *StorefrontE2ESuite) TestCustomerOrdersExpansion() {
	var customer service.CustomerDto
	code := s.do(http.MethodPost, "/api/v1/customers",
		service.CustomerCreateDto{Name: "Alice", Email: "alice@example.com"}, &customer)
	require.Equal(s.T(), http.StatusCreated, code)

	var order service.OrderDto
	code = s.do(http.MethodPost, "/api/v1/orders", service.OrderCreateDto{
		CustomerID: customer.ID,
		Lines:      []service.OrderLineDto{{ProductID: "P9", VariantID: "V9", Quantity: 2}},
	}, &order)
	require.Equal(s.T(), http.StatusCreated, code)

	var found service.CustomerDto
	code = s.do(http.MethodGet, "/api/v1/customers/"+customer.ID, nil, &found)
	require.Equal(s.T(), http.StatusOK, code)
	require.Len(s.T(), found.Orders, 1)
	require.Equal(s.T(), order.ID, found.Orders[0].ID)
}

func TestStorefrontE2ESuite(t *testing.T) {
	suite.Run(t, new(StorefrontE2ESuite))
}
