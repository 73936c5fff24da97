// Package errors provides the sentinel errors for store operations.
// Every fallible operation fails exactly one way: the referenced
// identifier does not exist in its collection.
package errors

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSellerNotFound   = errors.New("seller not found")
	ErrOrderNotFound    = errors.New("order not found")
)
