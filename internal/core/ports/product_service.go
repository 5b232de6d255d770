// internal/core/ports/product_service.go
package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hypesoft/catalog-api/internal/core/domain"
)

// StockOperation selects how a stock update is applied.
type StockOperation string

const (
	StockOperationSet    StockOperation = "set"
	StockOperationAdd    StockOperation = "add"
	StockOperationRemove StockOperation = "remove"
)

// CreateProductParams carries the fields needed to create a product.
type CreateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string
	CategoryID  string
	Stock       int
	SKU         string
}

// UpdateProductParams carries the replaceable descriptive fields.
type UpdateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string
	CategoryID  string
	SKU         string
}

// StockUpdate applies one stock mutation to a product.
type StockUpdate struct {
	Operation StockOperation
	Quantity  int
}

// ProductWithCategory pairs a product with its resolved category name
// for presentation. CategoryName is "Unknown Category" when the
// referenced category cannot be resolved.
type ProductWithCategory struct {
	Product      *domain.Product
	CategoryName string
}

// ProductService is the application port for product use cases.
type ProductService interface {
	Create(ctx context.Context, params CreateProductParams) (*ProductWithCategory, error)
	Update(ctx context.Context, id string, params UpdateProductParams) (*ProductWithCategory, error)
	UpdateStock(ctx context.Context, id string, update StockUpdate) (*ProductWithCategory, error)
	GetByID(ctx context.Context, id string) (*ProductWithCategory, error)
	List(ctx context.Context, query ProductQuery) (*PagedResult[ProductWithCategory], error)
	ListLowStock(ctx context.Context, threshold int) ([]ProductWithCategory, error)
	Delete(ctx context.Context, id string) error
}
