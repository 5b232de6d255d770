// internal/core/domain/stock.go
package domain

import (
	"fmt"
)

// DefaultLowStockThreshold is the stock level below which a product is
// reported as running low.
const DefaultLowStockThreshold = 10

// StockQuantity is an immutable, never-negative unit count. Add and
// Remove return new values.
type StockQuantity struct {
	Value int `json:"value"`
}

// NewStockQuantity creates a StockQuantity. Negative values are rejected.
func NewStockQuantity(value int) (StockQuantity, error) {
	if value < 0 {
		return StockQuantity{}, fmt.Errorf("%w: stock quantity cannot be negative", ErrInvalidArgument)
	}
	return StockQuantity{Value: value}, nil
}

// Add returns the quantity increased by the given amount.
func (s StockQuantity) Add(quantity int) (StockQuantity, error) {
	if quantity < 0 {
		return StockQuantity{}, fmt.Errorf("%w: quantity to add cannot be negative", ErrInvalidArgument)
	}
	return NewStockQuantity(s.Value + quantity)
}

// Remove returns the quantity decreased by the given amount. Removing
// more than is available fails.
func (s StockQuantity) Remove(quantity int) (StockQuantity, error) {
	if quantity < 0 {
		return StockQuantity{}, fmt.Errorf("%w: quantity to remove cannot be negative", ErrInvalidArgument)
	}
	if s.Value < quantity {
		return StockQuantity{}, &InsufficientStockError{Available: s.Value, Requested: quantity}
	}
	return NewStockQuantity(s.Value - quantity)
}

// IsEmpty reports whether no units are in stock.
func (s StockQuantity) IsEmpty() bool { return s.Value == 0 }

// IsAvailable reports whether at least one unit is in stock.
func (s StockQuantity) IsAvailable() bool { return s.Value > 0 }

// IsLow reports whether the stock is below the given threshold.
func (s StockQuantity) IsLow(threshold int) bool { return s.Value < threshold }

func (s StockQuantity) String() string {
	switch s.Value {
	case 0:
		return "Out of stock"
	case 1:
		return "1 unit"
	default:
		return fmt.Sprintf("%d units", s.Value)
	}
}
