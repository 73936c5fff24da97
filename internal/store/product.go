package store

import (
	"github.com/avoronin/storefront/internal/errors"
)

// Product represents a product entity in the store.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64 // Price in cents
}

// ProductUpdate carries the partial fields of a product update.
// Nil fields leave the current value untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *int64
}

// CreateProduct adds a new product and returns it.
func (s *Store) CreateProduct(name, description string, price int64) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:          nextID(&s.productSeq),
		Name:        name,
		Description: description,
		Price:       price,
	}
	s.products[product.ID] = product

	return product
}

// FindProductByID retrieves a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Store) FindProductByID(id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &p, nil
}

// UpdateProduct merges the set fields of upd onto the stored product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Store) UpdateProduct(id string, upd ProductUpdate) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	s.products[id] = p

	return &p, nil
}

// DeleteProductByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
// Variants created under the product are left in place.
func (s *Store) DeleteProductByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return errors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}
