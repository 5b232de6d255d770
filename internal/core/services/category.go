// internal/core/services/category.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// CategoryService handles category use cases. Deletion is refused
// while any product still references the category.
type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	logger     *slog.Logger
}

// Statically assert that *CategoryService implements the CategoryService port.
var _ ports.CategoryService = (*CategoryService)(nil)

// NewCategoryService creates a new category service.
func NewCategoryService(categories ports.CategoryRepository, products ports.ProductRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		logger:     logger.With(slog.String("service", "category")),
	}
}

// Create persists a new category after checking name uniqueness.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*ports.CategoryWithCount, error) {
	if taken, err := s.categories.ExistsByName(ctx, name, ""); err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	} else if taken {
		return nil, fmt.Errorf("%w: a category named %q already exists", domain.ErrDuplicateCategory, name)
	}

	category, err := domain.NewCategory(name, description)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name))

	return &ports.CategoryWithCount{Category: category}, nil
}

// Update replaces a category's name and description, re-checking name
// uniqueness against every other category.
func (s *CategoryService) Update(ctx context.Context, id, name, description string) (*ports.CategoryWithCount, error) {
	category, err := s.requireCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if taken, err := s.categories.ExistsByName(ctx, name, id); err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	} else if taken {
		return nil, fmt.Errorf("%w: a category named %q already exists", domain.ErrDuplicateCategory, name)
	}

	if err := category.UpdateInfo(name, description); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.InfoContext(ctx, "category updated", slog.String("category_id", id))

	return s.withProductCount(ctx, category)
}

// GetByID retrieves a category with its product count computed on
// demand from the product collection.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*ports.CategoryWithCount, error) {
	category, err := s.requireCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withProductCount(ctx, category)
}

// List returns one page of categories with per-category product counts
// resolved through a single aggregation.
func (s *CategoryService) List(ctx context.Context, query ports.CategoryQuery) (*ports.PagedResult[ports.CategoryWithCount], error) {
	query = query.Normalized()

	categories, totalCount, err := s.categories.FindPaged(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	counts, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}

	items := make([]ports.CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		items = append(items, ports.CategoryWithCount{
			Category:     c,
			ProductCount: counts[c.ID],
		})
	}

	return ports.NewPagedResult(items, query.Page, query.PageSize, totalCount), nil
}

// Delete removes a category unless any product still references it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.requireCategory(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.products.ExistsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: category %q has associated products", domain.ErrCategoryInUse, category.Name)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.InfoContext(ctx, "category deleted",
		slog.String("category_id", id),
		slog.String("name", category.Name))
	return nil
}

func (s *CategoryService) requireCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, id)
	}
	return category, nil
}

func (s *CategoryService) withProductCount(ctx context.Context, category *domain.Category) (*ports.CategoryWithCount, error) {
	counts, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	return &ports.CategoryWithCount{
		Category:     category,
		ProductCount: counts[category.ID],
	}, nil
}
