package store

import (
	"github.com/avoronin/storefront/internal/errors"
)

// Seller represents a seller entity in the store. Sellers are not
// referenced by any other entity.
type Seller struct {
	ID    string
	Name  string
	Email string
}

// SellerUpdate carries the partial fields of a seller update.
// Nil fields leave the current value untouched.
type SellerUpdate struct {
	Name  *string
	Email *string
}

// CreateSeller adds a new seller to the seller collection and returns it.
func (s *Store) CreateSeller(name, email string) Seller {
	s.mu.Lock()
	defer s.mu.Unlock()

	seller := Seller{
		ID:    nextID(&s.sellerSeq),
		Name:  name,
		Email: email,
	}
	s.sellers[seller.ID] = seller

	return seller
}

// FindSellerByID retrieves a seller by its ID.
// Returns ErrSellerNotFound if no seller exists with the given ID.
func (s *Store) FindSellerByID(id string) (*Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.sellers[id]
	if !ok {
		return nil, errors.ErrSellerNotFound
	}
	return &sl, nil
}

// UpdateSeller merges the set fields of upd onto the stored seller.
// Returns ErrSellerNotFound if no seller exists with the given ID.
func (s *Store) UpdateSeller(id string, upd SellerUpdate) (*Seller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.sellers[id]
	if !ok {
		return nil, errors.ErrSellerNotFound
	}
	if upd.Name != nil {
		sl.Name = *upd.Name
	}
	if upd.Email != nil {
		sl.Email = *upd.Email
	}
	s.sellers[id] = sl

	return &sl, nil
}

// DeleteSellerByID deletes a seller by its ID.
// Returns ErrSellerNotFound if no seller exists with the given ID.
func (s *Store) DeleteSellerByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sellers[id]; !exists {
		return errors.ErrSellerNotFound
	}
	delete(s.sellers, id)
	return nil
}
