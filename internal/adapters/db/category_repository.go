// internal/adapters/db/category_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

var categoryColumns = []string{
	"id", "name", "description", "is_active", "created_at", "updated_at",
}

// categoryRepository implements ports.CategoryRepository
type categoryRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *Database, logger *slog.Logger) ports.CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "category")),
	}
}

// Save inserts a new category
func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		category.ID, category.Name, category.Description,
		category.IsActive, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	r.logger.DebugContext(ctx, "category saved",
		slog.String("id", category.ID),
		slog.String("name", category.Name))

	return nil
}

// Update updates an existing category
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories SET
			name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		category.ID, category.Name, category.Description,
		category.IsActive, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	r.logger.DebugContext(ctx, "category updated", slog.String("id", category.ID))

	return nil
}

// Delete removes a category
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	r.logger.InfoContext(ctx, "category deleted", slog.String("id", id))

	return nil
}

// FindByID retrieves a category by ID. Returns (nil, nil) when no row matches.
func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	query := selectCategories().Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	category, err := scanCategory(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return category, nil
}

// FindByIDs retrieves the categories matching any of the given IDs.
func (r *categoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := selectCategories().Where(squirrel.Eq{"id": ids})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryCategories(ctx, sqlQuery, args...)
}

// FindAll retrieves every category ordered by name.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	query := selectCategories().OrderBy("name ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryCategories(ctx, sqlQuery, args...)
}

// FindPaged retrieves categories with filtering and pagination, returning
// the page of items and the total matching count.
func (r *categoryRepository) FindPaged(ctx context.Context, params ports.CategoryQuery) ([]*domain.Category, int64, error) {
	params = params.Normalized()

	qb := categoryFilters(selectCategories(), params)

	countQb := categoryFilters(
		squirrel.Select("COUNT(*)").From("categories").PlaceholderFormat(squirrel.Dollar),
		params,
	)
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	qb = qb.OrderBy("name ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64((params.Page - 1) * params.PageSize))

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	categories, err := r.queryCategories(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return categories, totalCount, nil
}

// ExistsByName checks for another category with the same name.
func (r *categoryRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	qb := squirrel.Select("1").From("categories").
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar)
	if excludeID != "" {
		qb = qb.Where(squirrel.NotEq{"id": excludeID})
	}

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, "SELECT EXISTS("+sqlQuery+")", args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists, nil
}

// Count returns the total number of categories
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func (r *categoryRepository) queryCategories(ctx context.Context, sqlQuery string, args ...interface{}) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

func selectCategories() squirrel.SelectBuilder {
	return squirrel.Select(categoryColumns...).
		From("categories").
		PlaceholderFormat(squirrel.Dollar)
}

func categoryFilters(qb squirrel.SelectBuilder, params ports.CategoryQuery) squirrel.SelectBuilder {
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		qb = qb.Where(squirrel.ILike{"name": pattern})
	}
	if params.IsActive != nil {
		qb = qb.Where(squirrel.Eq{"is_active": *params.IsActive})
	}
	return qb
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(
		&category.ID, &category.Name, &category.Description,
		&category.IsActive, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}
