// Package store implements the in-memory entity store and the
// order/inventory consistency engine of the storefront.
package store

import (
	"fmt"
	"sort"
	"sync"
)

// Store owns the five entity collections. It is constructed once at process
// start and passed by handle to the boundary layer; there is no ambient
// global state. Mutating operations hold the write lock for their whole
// body, so one order's inventory adjustments apply as a single atomic unit
// relative to other order operations.
type Store struct {
	mu sync.RWMutex

	products  map[string]Product
	variants  map[string]Variant
	customers map[string]Customer
	sellers   map[string]Seller
	orders    map[string]Order

	productSeq  int
	variantSeq  int
	customerSeq int
	sellerSeq   int
	orderSeq    int
}

// New creates an empty Store with all sequences starting at 1.
func New() *Store {
	return &Store{
		products:  make(map[string]Product),
		variants:  make(map[string]Variant),
		customers: make(map[string]Customer),
		sellers:   make(map[string]Seller),
		orders:    make(map[string]Order),

		productSeq:  1,
		variantSeq:  1,
		customerSeq: 1,
		sellerSeq:   1,
		orderSeq:    1,
	}
}

// nextID issues the next identifier from a collection sequence as a decimal
// string. Sequences only ever grow, so an id is never reused within the
// process even after the record it named has been deleted.
func nextID(seq *int) string {
	id := fmt.Sprintf("%d", *seq)
	*seq++
	return id
}

// idLess orders decimal string ids numerically.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func sortByID[T any](list []T, id func(T) string) {
	sort.Slice(list, func(i, j int) bool {
		return idLess(id(list[i]), id(list[j]))
	})
}
