// internal/core/ports/product_repository.go
package ports

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hypesoft/catalog-api/internal/core/domain"
)

// Product sort keys accepted by FindPaged. Unrecognized keys fall back
// to SortByCreatedAt.
const (
	SortByName      = "name"
	SortByPrice     = "price"
	SortByStock     = "stock"
	SortByCreatedAt = "createdat"
)

// ProductQuery describes a filtered, sorted, paged product lookup.
// All filter fields are ANDed when present.
type ProductQuery struct {
	Search     string // case-insensitive name substring
	CategoryID string
	IsActive   *bool
	SortBy     string
	Ascending  bool
	Page       int
	PageSize   int
}

// Normalized clamps paging to valid bounds and canonicalizes the sort
// key. Page is forced to at least 1, page size into [1, MaxPageSize].
func (q ProductQuery) Normalized() ProductQuery {
	q.Page = normalizePage(q.Page)
	q.PageSize = normalizePageSize(q.PageSize)

	switch strings.ToLower(q.SortBy) {
	case SortByName, SortByPrice, SortByStock:
		q.SortBy = strings.ToLower(q.SortBy)
	default:
		q.SortBy = SortByCreatedAt
	}
	return q
}

// ProductRepository is the persistence port for products. Lookups by
// id return (nil, nil) when no product matches.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	FindPaged(ctx context.Context, query ProductQuery) ([]*domain.Product, int64, error)
	FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
	FindMostRecent(ctx context.Context, limit int) ([]*domain.Product, error)

	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	ExistsBySKU(ctx context.Context, sku, excludeID string) (bool, error)
	ExistsByCategory(ctx context.Context, categoryID string) (bool, error)

	Save(ctx context.Context, product *domain.Product) error
	SaveBatch(ctx context.Context, products []*domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	CountByActive(ctx context.Context, active bool) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}
