package store

import (
	"github.com/avoronin/storefront/internal/errors"
)

// Customer represents a customer entity in the store.
type Customer struct {
	ID      string
	Name    string
	Email   string
	Address string
}

// CustomerUpdate carries the partial fields of a customer update.
// Nil fields leave the current value untouched.
type CustomerUpdate struct {
	Name    *string
	Email   *string
	Address *string
}

// CreateCustomer adds a new customer and returns it.
func (s *Store) CreateCustomer(name, email, address string) Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := Customer{
		ID:      nextID(&s.customerSeq),
		Name:    name,
		Email:   email,
		Address: address,
	}
	s.customers[customer.ID] = customer

	return customer
}

// FindCustomerByID retrieves a customer by its ID.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (s *Store) FindCustomerByID(id string) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, errors.ErrCustomerNotFound
	}
	return &c, nil
}

// UpdateCustomer merges the set fields of upd onto the stored customer.
// Orders placed earlier keep the snapshot captured at their creation.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (s *Store) UpdateCustomer(id string, upd CustomerUpdate) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, errors.ErrCustomerNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Address != nil {
		c.Address = *upd.Address
	}
	s.customers[id] = c

	return &c, nil
}

// DeleteCustomerByID deletes a customer by its ID.
// Returns ErrCustomerNotFound if no customer exists with the given ID.
func (s *Store) DeleteCustomerByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[id]; !exists {
		return errors.ErrCustomerNotFound
	}
	delete(s.customers, id)
	return nil
}
