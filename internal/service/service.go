// Package service provides the storefront business facade over the entity store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avoronin/storefront/internal/store"
	"github.com/avoronin/storefront/pkg/messaging"
	"github.com/avoronin/storefront/pkg/messaging/events"
)

// StorefrontService defines the operation set exposed to the boundary layer.
// Every fallible operation fails only with a not-found sentinel from the
// internal/errors package; field validation happens at the boundary before
// a call reaches this facade.
type StorefrontService interface {
	CreateProduct(ctx context.Context, product ProductCreateDto) (*ProductDto, error)
	FindProductByID(ctx context.Context, id string) (*ProductDto, error)
	UpdateProduct(ctx context.Context, id string, product ProductUpdateDto) (*ProductDto, error)
	DeleteProductByID(ctx context.Context, id string) error

	CreateVariant(ctx context.Context, productID string, variant VariantCreateDto) (*VariantDto, error)
	FindVariantByID(ctx context.Context, id string) (*VariantDto, error)
	UpdateVariant(ctx context.Context, id string, variant VariantUpdateDto) (*VariantDto, error)
	DeleteVariantByID(ctx context.Context, id string) error

	CreateCustomer(ctx context.Context, customer CustomerCreateDto) (*CustomerDto, error)
	FindCustomerByID(ctx context.Context, id string) (*CustomerDto, error)
	UpdateCustomer(ctx context.Context, id string, customer CustomerUpdateDto) (*CustomerDto, error)
	DeleteCustomerByID(ctx context.Context, id string) error

	CreateSeller(ctx context.Context, seller SellerCreateDto) (*SellerDto, error)
	FindSellerByID(ctx context.Context, id string) (*SellerDto, error)
	UpdateSeller(ctx context.Context, id string, seller SellerUpdateDto) (*SellerDto, error)
	DeleteSellerByID(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, order OrderCreateDto) (*OrderDto, error)
	FindOrderByID(ctx context.Context, id string) (*OrderDto, error)
	CancelOrder(ctx context.Context, id string) error
}

// Service implements StorefrontService on top of the in-memory store.
type Service struct {
	store     *store.Store
	publisher messaging.Publisher
}

// NewService creates a new Service with the provided store and event publisher.
func NewService(st *store.Store, publisher messaging.Publisher) *Service {
	return &Service{
		store:     st,
		publisher: publisher,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description"`
	Price       int64  `json:"price"       validate:"min=0"`
}

// ProductUpdateDto carries the partial fields of a product update.
// Absent fields leave the stored value untouched.
type ProductUpdateDto struct {
	Name        *string `json:"name"        validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"       validate:"omitempty,min=0"`
}

// ProductDto represents the data transfer object for a product,
// including the variants created under it.
type ProductDto struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       int64        `json:"price"`
	Variants    []VariantDto `json:"variants"`
}

// VariantCreateDto represents the data transfer object for creating a new variant.
type VariantCreateDto struct {
	Color             string `json:"color"              validate:"required"`
	Size              string `json:"size"               validate:"required"`
	InventoryQuantity int32  `json:"inventory_quantity"`
}

// VariantUpdateDto carries the partial fields of a variant update.
type VariantUpdateDto struct {
	Color             *string `json:"color"`
	Size              *string `json:"size"`
	InventoryQuantity *int32  `json:"inventory_quantity"`
}

// VariantDto represents the data transfer object for a variant.
type VariantDto struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	Color             string `json:"color"`
	Size              string `json:"size"`
	InventoryQuantity int32  `json:"inventory_quantity"`
}

// CustomerCreateDto represents the data transfer object for registering a customer.
type CustomerCreateDto struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address"`
}

// CustomerUpdateDto carries the partial fields of a customer update.
type CustomerUpdateDto struct {
	Name    *string `json:"name"    validate:"omitempty,max=200"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
}

// CustomerDto represents the data transfer object for a customer. Orders is
// filled on direct customer reads and left empty for the snapshot embedded
// in an order.
type CustomerDto struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Address string     `json:"address,omitempty"`
	Orders  []OrderDto `json:"orders,omitempty"`
}

// SellerCreateDto represents the data transfer object for registering a seller.
type SellerCreateDto struct {
	Name  string `json:"name"  validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
}

// SellerUpdateDto carries the partial fields of a seller update.
type SellerUpdateDto struct {
	Name  *string `json:"name"  validate:"omitempty,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// SellerDto represents the data transfer object for a seller.
type SellerDto struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderLineDto is one position on an order.
type OrderLineDto struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int32  `json:"quantity"   validate:"required,min=1"`
}

// OrderCreateDto represents the data transfer object for placing an order.
type OrderCreateDto struct {
	CustomerID string         `json:"customer_id" validate:"required"`
	Lines      []OrderLineDto `json:"lines"       validate:"required,gt=0,dive"`
}

// OrderDto represents the data transfer object for an order. Customer is the
// snapshot captured when the order was placed.
type OrderDto struct {
	ID        string         `json:"id"`
	OrderDate time.Time      `json:"order_date"`
	Customer  CustomerDto    `json:"customer"`
	Lines     []OrderLineDto `json:"lines"`
}

// CreateProduct creates a new product and returns it as a ProductDto.
func (s *Service) CreateProduct(_ context.Context, product ProductCreateDto) (*ProductDto, error) {
	created := s.store.CreateProduct(product.Name, product.Description, product.Price)
	return s.toProductDto(&created), nil
}

// FindProductByID retrieves a product with its variants.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindProductByID(_ context.Context, id string) (*ProductDto, error) {
	product, err := s.store.FindProductByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return s.toProductDto(product), nil
}

// UpdateProduct merges the set fields onto an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) UpdateProduct(_ context.Context, id string, product ProductUpdateDto) (*ProductDto, error) {
	updated, err := s.store.UpdateProduct(id, store.ProductUpdate{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return s.toProductDto(updated), nil
}

// DeleteProductByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteProductByID(_ context.Context, id string) error {
	return s.store.DeleteProductByID(id)
}

// CreateVariant creates a new variant under an existing product.
// Returns ErrProductNotFound if the parent product does not exist.
func (s *Service) CreateVariant(_ context.Context, productID string, variant VariantCreateDto) (*VariantDto, error) {
	created, err := s.store.CreateVariant(productID, variant.Color, variant.Size, variant.InventoryQuantity)
	if err != nil {
		return nil, fmt.Errorf("failed to create variant under product %s: %w", productID, err)
	}
	return toVariantDto(created), nil
}

// FindVariantByID retrieves a variant by its ID.
// Returns ErrVariantNotFound if no variant exists with the given ID.
func (s *Service) FindVariantByID(_ context.Context, id string) (*VariantDto, error) {
	variant, err := s.store.FindVariantByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch variant by ID %s: %w", id, err)
	}
	return toVariantDto(variant), nil
}

// UpdateVariant merges the set fields onto an existing variant.
// Returns ErrVariantNotFound if no variant exists with the given ID.
func (s *Service) UpdateVariant(_ context.Context, id string, variant VariantUpdateDto) (*VariantDto, error) {
	updated, err := s.store.UpdateVariant(id, store.VariantUpdate{
		Color:             variant.Color,
		Size:              variant.Size,
		InventoryQuantity: variant.InventoryQuantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update variant with ID %s: %w", id, err)
	}
	return toVariantDto(updated), nil
}

// DeleteVariantByID deletes a variant by its ID.
// Returns ErrVariantNotFound if no variant exists with the given ID.
func (s *Service) DeleteVariantByID(_ context.Context, id string) error {
	return s.store.DeleteVariantByID(id)
}

// CreateCustomer registers a new customer and returns it as a CustomerDto.
func (s *Service) CreateCustomer(_ context.Context, customer CustomerCreateDto) (*CustomerDto, error) {
	created := s.store.CreateCustomer(customer.Name, customer.Email, customer.Address)
	dto := toCustomerDto(created)
	return &dto, nil
}

// FindCustomerByID retrieves a customer with their active orders.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (s *Service) FindCustomerByID(_ context.Context, id string) (*CustomerDto, error) {
	customer, err := s.store.FindCustomerByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer by ID %s: %w", id, err)
	}
	dto := toCustomerDto(*customer)
	orders := s.store.OrdersByCustomer(id)
	dto.Orders = make([]OrderDto, 0, len(orders))
	for _, o := range orders {
		dto.Orders = append(dto.Orders, *toOrderDto(&o))
	}
	return &dto, nil
}

// UpdateCustomer merges the set fields onto an existing customer.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (s *Service) UpdateCustomer(_ context.Context, id string, customer CustomerUpdateDto) (*CustomerDto, error) {
	updated, err := s.store.UpdateCustomer(id, store.CustomerUpdate{
		Name:    customer.Name,
		Email:   customer.Email,
		Address: customer.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update customer with ID %s: %w", id, err)
	}
	dto := toCustomerDto(*updated)
	return &dto, nil
}

// DeleteCustomerByID deletes a customer by its ID.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (s *Service) DeleteCustomerByID(_ context.Context, id string) error {
	return s.store.DeleteCustomerByID(id)
}

// CreateSeller registers a new seller and returns it as a SellerDto.
func (s *Service) CreateSeller(_ context.Context, seller SellerCreateDto) (*SellerDto, error) {
	created := s.store.CreateSeller(seller.Name, seller.Email)
	return toSellerDto(&created), nil
}

// FindSellerByID retrieves a seller by its ID.
// Returns ErrSellerNotFound if no seller exists with the given ID.
func (s *Service) FindSellerByID(_ context.Context, id string) (*SellerDto, error) {
	seller, err := s.store.FindSellerByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller by ID %s: %w", id, err)
	}
	return toSellerDto(seller), nil
}

// UpdateSeller merges the set fields onto an existing seller.
// Returns ErrSellerNotFound if no seller exists with the given ID.
func (s *Service) UpdateSeller(_ context.Context, id string, seller SellerUpdateDto) (*SellerDto, error) {
	updated, err := s.store.UpdateSeller(id, store.SellerUpdate{
		Name:  seller.Name,
		Email: seller.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update seller with ID %s: %w", id, err)
	}
	return toSellerDto(updated), nil
}

// DeleteSellerByID deletes a seller by its ID.
// Returns ErrSellerNotFound if no seller exists with the given ID.
func (s *Service) DeleteSellerByID(_ context.Context, id string) error {
	return s.store.DeleteSellerByID(id)
}

// CreateOrder places an order for an existing customer, adjusting inventory
// for every line that resolves, and publishes an OrderCreatedEvent.
// Returns ErrCustomerNotFound, with no side effects, if the customer does
// not exist.
func (s *Service) CreateOrder(ctx context.Context, order OrderCreateDto) (*OrderDto, error) {
	lines := make([]store.OrderLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, store.OrderLine{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}

	created, err := s.store.CreateOrder(order.CustomerID, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to create order for customer %s: %w", order.CustomerID, err)
	}

	event := events.OrderCreatedEvent{
		OrderID:    created.ID,
		CustomerID: created.Customer.ID,
		Lines:      len(created.Lines),
		CreatedAt:  created.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish OrderCreatedEvent", "order_id", created.ID, "error", err)
	}

	return toOrderDto(created), nil
}

// FindOrderByID retrieves an order by its ID.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *Service) FindOrderByID(_ context.Context, id string) (*OrderDto, error) {
	order, err := s.store.FindOrderByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order by ID %s: %w", id, err)
	}
	return toOrderDto(order), nil
}

// CancelOrder removes an order, restores inventory for its lines and
// publishes an OrderCancelledEvent.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *Service) CancelOrder(ctx context.Context, id string) error {
	cancelled, err := s.store.CancelOrder(id)
	if err != nil {
		return err
	}

	event := events.OrderCancelledEvent{
		OrderID:     cancelled.ID,
		CustomerID:  cancelled.Customer.ID,
		CancelledAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish OrderCancelledEvent", "order_id", cancelled.ID, "error", err)
	}

	return nil
}

// toProductDto converts a store.Product to a ProductDto with its variants.
func (s *Service) toProductDto(product *store.Product) *ProductDto {
	variants := s.store.VariantsByProduct(product.ID)
	variantDtos := make([]VariantDto, 0, len(variants))
	for _, v := range variants {
		variantDtos = append(variantDtos, *toVariantDto(&v))
	}
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Variants:    variantDtos,
	}
}

func toVariantDto(variant *store.Variant) *VariantDto {
	return &VariantDto{
		ID:                variant.ID,
		ProductID:         variant.ProductID,
		Color:             variant.Color,
		Size:              variant.Size,
		InventoryQuantity: variant.InventoryQuantity,
	}
}

func toCustomerDto(customer store.Customer) CustomerDto {
	return CustomerDto{
		ID:      customer.ID,
		Name:    customer.Name,
		Email:   customer.Email,
		Address: customer.Address,
	}
}

func toSellerDto(seller *store.Seller) *SellerDto {
	return &SellerDto{
		ID:    seller.ID,
		Name:  seller.Name,
		Email: seller.Email,
	}
}

// toOrderDto converts a store.Order to an OrderDto. The embedded customer
// snapshot is rendered without its orders list.
func toOrderDto(order *store.Order) *OrderDto {
	lines := make([]OrderLineDto, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, OrderLineDto{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	return &OrderDto{
		ID:        order.ID,
		OrderDate: order.CreatedAt,
		Customer:  toCustomerDto(order.Customer),
		Lines:     lines,
	}
}
