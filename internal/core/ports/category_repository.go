// internal/core/ports/category_repository.go
package ports

import (
	"context"

	"github.com/hypesoft/catalog-api/internal/core/domain"
)

// CategoryQuery describes a filtered, paged category lookup. Results
// are always sorted by name.
type CategoryQuery struct {
	Search   string // case-insensitive name substring
	IsActive *bool
	Page     int
	PageSize int
}

// Normalized clamps paging to valid bounds.
func (q CategoryQuery) Normalized() CategoryQuery {
	q.Page = normalizePage(q.Page)
	q.PageSize = normalizePageSize(q.PageSize)
	return q
}

// CategoryRepository is the persistence port for categories. Lookups
// by id return (nil, nil) when no category matches.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindPaged(ctx context.Context, query CategoryQuery) ([]*domain.Category, int64, error)

	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)

	Save(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
}
