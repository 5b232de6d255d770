// internal/core/ports/category_service.go
package ports

import (
	"context"

	"github.com/hypesoft/catalog-api/internal/core/domain"
)

// CategoryWithCount pairs a category with its on-demand product count.
type CategoryWithCount struct {
	Category     *domain.Category
	ProductCount int
}

// CategoryService is the application port for category use cases.
type CategoryService interface {
	Create(ctx context.Context, name, description string) (*CategoryWithCount, error)
	Update(ctx context.Context, id, name, description string) (*CategoryWithCount, error)
	GetByID(ctx context.Context, id string) (*CategoryWithCount, error)
	List(ctx context.Context, query CategoryQuery) (*PagedResult[CategoryWithCount], error)
	Delete(ctx context.Context, id string) error
}
