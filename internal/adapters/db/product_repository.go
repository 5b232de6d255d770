// internal/adapters/db/product_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

var productColumns = []string{
	"id", "name", "description", "price_amount", "price_currency",
	"category_id", "stock", "is_active", "sku", "created_at", "updated_at",
}

// productRepository implements ports.ProductRepository
type productRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *Database, logger *slog.Logger) ports.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "product")),
	}
}

// Save inserts a new product
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, price_amount, price_currency,
			category_id, stock, is_active, sku, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query, productArgs(product)...)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	r.logger.DebugContext(ctx, "product saved",
		slog.String("id", product.ID),
		slog.String("name", product.Name))

	return nil
}

// SaveBatch inserts multiple products in a single transaction
func (r *productRepository) SaveBatch(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}

		query := `
			INSERT INTO products (
				id, name, description, price_amount, price_currency,
				category_id, stock, is_active, sku, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		for _, p := range products {
			batch.Queue(query, productArgs(p)...)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := range products {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to save product %d: %w", i, err)
			}
		}

		return nil
	})
}

// Update updates an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, price_amount = $4, price_currency = $5,
			category_id = $6, stock = $7, is_active = $8, sku = $9, updated_at = $10
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description,
		product.Price.Amount, product.Price.Currency,
		product.CategoryID, product.Stock.Value, product.IsActive,
		nullableString(product.SKU), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}

	r.logger.DebugContext(ctx, "product updated", slog.String("id", product.ID))

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}

	r.logger.InfoContext(ctx, "product deleted", slog.String("id", id))

	return nil
}

// FindByID retrieves a product by ID. Returns (nil, nil) when no row matches.
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := selectProducts().Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	product, err := scanProduct(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindByIDs retrieves the products matching any of the given IDs.
func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := selectProducts().Where(squirrel.Eq{"id": ids})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryProducts(ctx, sqlQuery, args...)
}

// FindPaged retrieves products with filtering, sorting and pagination,
// returning the page of items and the total matching count.
func (r *productRepository) FindPaged(ctx context.Context, params ports.ProductQuery) ([]*domain.Product, int64, error) {
	params = params.Normalized()

	qb := productFilters(selectProducts(), params)

	countQb := productFilters(
		squirrel.Select("COUNT(*)").From("products").PlaceholderFormat(squirrel.Dollar),
		params,
	)
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	qb = qb.OrderBy(productOrderBy(params.SortBy, params.Ascending))
	qb = qb.Limit(uint64(params.PageSize)).
		Offset(uint64((params.Page - 1) * params.PageSize))

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	products, err := r.queryProducts(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return products, totalCount, nil
}

// FindLowStock retrieves active products with stock below the
// threshold, lowest stock first.
func (r *productRepository) FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	query := selectProducts().
		Where(squirrel.Lt{"stock": threshold}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("stock ASC", "name ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryProducts(ctx, sqlQuery, args...)
}

// FindMostRecent retrieves the most recently created active products.
func (r *productRepository) FindMostRecent(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := selectProducts().
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryProducts(ctx, sqlQuery, args...)
}

// ExistsByName checks for another product with the same name.
func (r *productRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"name": name}, excludeID)
}

// ExistsBySKU checks for another product with the same SKU.
func (r *productRepository) ExistsBySKU(ctx context.Context, sku, excludeID string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"sku": sku}, excludeID)
}

// ExistsByCategory checks whether any product references the category.
func (r *productRepository) ExistsByCategory(ctx context.Context, categoryID string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"category_id": categoryID}, "")
}

func (r *productRepository) exists(ctx context.Context, cond squirrel.Eq, excludeID string) (bool, error) {
	qb := squirrel.Select("1").From("products").
		Where(cond).
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

// Count returns the total number of products
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountByActive returns the number of products in the given active state
func (r *productRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active = $1`, active).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountByCategory returns active product counts keyed by category ID
func (r *productRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT category_id, COUNT(*) FROM products WHERE is_active = TRUE GROUP BY category_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var categoryID string
		var count int
		if err := rows.Scan(&categoryID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[categoryID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// TotalStockValue returns the sum of price * stock across active products
func (r *productRepository) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(price_amount * stock), 0) FROM products WHERE is_active = TRUE`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum stock value: %w", err)
	}
	return total, nil
}

func (r *productRepository) queryProducts(ctx context.Context, sqlQuery string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

func selectProducts() squirrel.SelectBuilder {
	return squirrel.Select(productColumns...).
		From("products").
		PlaceholderFormat(squirrel.Dollar)
}

func productFilters(qb squirrel.SelectBuilder, params ports.ProductQuery) squirrel.SelectBuilder {
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		qb = qb.Where(squirrel.ILike{"name": pattern})
	}
	if params.CategoryID != "" {
		qb = qb.Where(squirrel.Eq{"category_id": params.CategoryID})
	}
	if params.IsActive != nil {
		qb = qb.Where(squirrel.Eq{"is_active": *params.IsActive})
	}
	return qb
}

func productOrderBy(sortBy string, ascending bool) string {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	switch sortBy {
	case ports.SortByName:
		return fmt.Sprintf("name %s", direction)
	case ports.SortByPrice:
		return fmt.Sprintf("price_amount %s", direction)
	case ports.SortByStock:
		return fmt.Sprintf("stock %s", direction)
	default:
		return fmt.Sprintf("created_at %s", direction)
	}
}

func productArgs(p *domain.Product) []interface{} {
	return []interface{}{
		p.ID, p.Name, p.Description,
		p.Price.Amount, p.Price.Currency,
		p.CategoryID, p.Stock.Value, p.IsActive,
		nullableString(p.SKU), p.CreatedAt, p.UpdatedAt,
	}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	var sku sql.NullString
	var amount decimal.Decimal
	var currency string
	var stock int

	err := row.Scan(
		&product.ID, &product.Name, &product.Description,
		&amount, &currency,
		&product.CategoryID, &stock, &product.IsActive,
		&sku, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Price = domain.Money{Amount: amount, Currency: currency}
	product.Stock = domain.StockQuantity{Value: stock}
	product.SKU = sku.String

	return product, nil
}
