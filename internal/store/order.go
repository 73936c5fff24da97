package store

import (
	"time"

	"github.com/avoronin/storefront/internal/errors"
)

// OrderLine is one position on an order. Lines are recorded exactly as
// submitted; the referenced product/variant pair is not validated.
type OrderLine struct {
	ProductID string
	VariantID string
	Quantity  int32
}

// Order represents a placed order. Customer is a snapshot captured at
// creation time; later changes to the customer record do not reach it.
// An order is either present in the collection (active) or gone
// (cancelled); no tombstone is kept.
type Order struct {
	ID        string
	CreatedAt time.Time
	Customer  Customer
	Lines     []OrderLine
}

// CreateOrder places a new order for an existing customer and decrements
// inventory for every line whose (productID, variantID) pair resolves to a
// variant. Lines that resolve to nothing are kept on the order with no
// inventory effect.
// Returns ErrCustomerNotFound, with no side effects, if the customer does
// not exist.
func (s *Store) CreateOrder(customerID string, lines []OrderLine) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[customerID]
	if !ok {
		return nil, errors.ErrCustomerNotFound
	}

	order := Order{
		ID:        nextID(&s.orderSeq),
		CreatedAt: time.Now().UTC(),
		Customer:  customer,
		Lines:     append([]OrderLine(nil), lines...),
	}

	for _, line := range order.Lines {
		s.adjustInventory(line.ProductID, line.VariantID, -line.Quantity)
	}

	s.orders[order.ID] = order
	return &order, nil
}

// CancelOrder removes an order and restores inventory by the exact
// quantities recorded on its lines, mirroring the creation decrements.
// Cancellation is destructive: a cancelled order id is not found afterwards.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *Store) CancelOrder(orderID string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, errors.ErrOrderNotFound
	}

	for _, line := range order.Lines {
		s.adjustInventory(line.ProductID, line.VariantID, line.Quantity)
	}

	delete(s.orders, orderID)
	return &order, nil
}

// FindOrderByID retrieves an order by its ID.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *Store) FindOrderByID(id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errors.ErrOrderNotFound
	}
	return &o, nil
}

// OrdersByCustomer returns the active orders whose snapshot was taken from
// the given customer, ordered by id.
func (s *Store) OrdersByCustomer(customerID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Order, 0)
	for _, o := range s.orders {
		if o.Customer.ID == customerID {
			list = append(list, o)
		}
	}
	sortByID(list, func(o Order) string { return o.ID })
	return list
}

// adjustInventory applies a signed delta to the variant where both
// productID and variantID match the same record. Variant ids are unique,
// but a line naming a variant under the wrong product must not adjust it.
// A pair that resolves to nothing is silently ignored.
// Callers must hold the write lock.
func (s *Store) adjustInventory(productID, variantID string, delta int32) {
	v, ok := s.variants[variantID]
	if !ok || v.ProductID != productID {
		return
	}
	v.InventoryQuantity += delta
	s.variants[variantID] = v
}
