package store

import (
	"github.com/avoronin/storefront/internal/errors"
)

// Variant represents a product variant. Quantity may go negative: orders
// are accepted regardless of available stock.
type Variant struct {
	ID                string
	ProductID         string
	Color             string
	Size              string
	InventoryQuantity int32
}

// VariantUpdate carries the partial fields of a variant update.
// Nil fields leave the current value untouched. The parent product
// reference is fixed at creation time and cannot be changed.
type VariantUpdate struct {
	Color             *string
	Size              *string
	InventoryQuantity *int32
}

// CreateVariant adds a new variant under an existing product.
// Returns ErrProductNotFound if the parent product does not exist.
func (s *Store) CreateVariant(productID, color, size string, quantity int32) (*Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return nil, errors.ErrProductNotFound
	}

	variant := Variant{
		ID:                nextID(&s.variantSeq),
		ProductID:         productID,
		Color:             color,
		Size:              size,
		InventoryQuantity: quantity,
	}
	s.variants[variant.ID] = variant

	return &variant, nil
}

// FindVariantByID retrieves a variant by its ID.
// Returns ErrVariantNotFound if no variant exists with the given ID.
func (s *Store) FindVariantByID(id string) (*Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.variants[id]
	if !ok {
		return nil, errors.ErrVariantNotFound
	}
	return &v, nil
}

// UpdateVariant merges the set fields of upd onto the stored variant.
// Returns ErrVariantNotFound if no variant exists with the given ID.
func (s *Store) UpdateVariant(id string, upd VariantUpdate) (*Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.variants[id]
	if !ok {
		return nil, errors.ErrVariantNotFound
	}
	if upd.Color != nil {
		v.Color = *upd.Color
	}
	if upd.Size != nil {
		v.Size = *upd.Size
	}
	if upd.InventoryQuantity != nil {
		v.InventoryQuantity = *upd.InventoryQuantity
	}
	s.variants[id] = v

	return &v, nil
}

// DeleteVariantByID deletes a variant by its ID.
// Returns ErrVariantNotFound if no variant exists with the given ID.
func (s *Store) DeleteVariantByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.variants[id]; !exists {
		return errors.ErrVariantNotFound
	}
	delete(s.variants, id)
	return nil
}

// VariantsByProduct returns the variants created under the given product,
// ordered by id. Returns an empty slice when the product has no variants
// or does not exist.
func (s *Store) VariantsByProduct(productID string) []Variant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Variant, 0)
	for _, v := range s.variants {
		if v.ProductID == productID {
			list = append(list, v)
		}
	}
	sortByID(list, func(v Variant) string { return v.ID })
	return list
}
