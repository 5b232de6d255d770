// internal/core/domain/product.go
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxProductNameLen        = 200
	maxProductDescriptionLen = 1000
	maxSKULen                = 50
)

// Product is a catalog entry. The zero value is not usable; construct
// with NewProduct and mutate only through the methods below, each of
// which refreshes UpdatedAt.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       Money         `json:"price"`
	CategoryID  string        `json:"category_id"`
	Stock       StockQuantity `json:"stock"`
	IsActive    bool          `json:"is_active"`
	SKU         string        `json:"sku,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewProduct creates an active product with a generated id and fresh
// timestamps. Name and category are required.
func NewProduct(name, description string, price Money, categoryID string, stock StockQuantity, sku string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryID(categoryID); err != nil {
		return nil, err
	}
	if err := validateProductDescription(description); err != nil {
		return nil, err
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		CategoryID:  categoryID,
		Stock:       stock,
		IsActive:    true,
		SKU:         strings.TrimSpace(sku),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateStock replaces the stock level outright.
func (p *Product) UpdateStock(quantity int) error {
	stock, err := NewStockQuantity(quantity)
	if err != nil {
		return err
	}
	p.Stock = stock
	p.touch()
	return nil
}

// AddStock increases stock by a positive quantity.
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity to add must be positive", ErrInvalidArgument)
	}
	stock, err := p.Stock.Add(quantity)
	if err != nil {
		return err
	}
	p.Stock = stock
	p.touch()
	return nil
}

// RemoveStock decreases stock by a positive quantity, failing without
// mutation when the removal exceeds what is available.
func (p *Product) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity to remove must be positive", ErrInvalidArgument)
	}
	if p.Stock.Value < quantity {
		return &InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.Stock.Value,
			Requested:   quantity,
		}
	}
	stock, err := p.Stock.Remove(quantity)
	if err != nil {
		return err
	}
	p.Stock = stock
	p.touch()
	return nil
}

// IsLowStock reports whether stock is below the threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock.IsLow(threshold)
}

// Activate makes the product visible to storefront queries.
func (p *Product) Activate() {
	p.IsActive = true
	p.touch()
}

// Deactivate hides the product without deleting it.
func (p *Product) Deactivate() {
	p.IsActive = false
	p.touch()
}

// UpdateInfo replaces the mutable descriptive fields after
// re-validating them. Stock and activation state are untouched.
func (p *Product) UpdateInfo(name, description string, price Money, categoryID, sku string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateCategoryID(categoryID); err != nil {
		return err
	}
	if err := validateProductDescription(description); err != nil {
		return err
	}
	if err := validateSKU(sku); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Price = price
	p.CategoryID = categoryID
	p.SKU = strings.TrimSpace(sku)
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: product name cannot be empty", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(name) > maxProductNameLen {
		return fmt.Errorf("%w: product name cannot exceed %d characters", ErrInvalidArgument, maxProductNameLen)
	}
	return nil
}

func validateProductDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > maxProductDescriptionLen {
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrInvalidArgument, maxProductDescriptionLen)
	}
	return nil
}

func validateSKU(sku string) error {
	if utf8.RuneCountInString(strings.TrimSpace(sku)) > maxSKULen {
		return fmt.Errorf("%w: sku cannot exceed %d characters", ErrInvalidArgument, maxSKULen)
	}
	return nil
}

func validateCategoryID(categoryID string) error {
	if strings.TrimSpace(categoryID) == "" {
		return fmt.Errorf("%w: category id cannot be empty", ErrInvalidArgument)
	}
	return nil
}
