// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable, user-facing failure kinds the
// handlers translate into transport status codes. Wrap them with
// fmt.Errorf("...: %w", ...) so callers can match with errors.Is.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateProduct  = errors.New("duplicate product")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrCategoryInUse     = errors.New("category in use")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// InsufficientStockError is returned when a removal exceeds the
// available quantity. It carries enough detail for a useful message.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("insufficient stock for product %q: available %d, requested %d",
			e.ProductName, e.Available, e.Requested)
	}
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}
