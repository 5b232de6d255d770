// internal/core/services/product.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// UnknownCategoryName is the display fallback when a product references
// a category that can no longer be resolved.
const UnknownCategoryName = "Unknown Category"

// ProductService handles product use cases: create, update, stock
// mutation, deletion and paged retrieval.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	logger     *slog.Logger
}

// Statically assert that *ProductService implements the ProductService port.
var _ ports.ProductService = (*ProductService)(nil)

// NewProductService creates a new product service.
func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		logger:     logger.With(slog.String("service", "product")),
	}
}

// Create validates uniqueness and the target category, then persists a
// new product. No write happens if any check fails.
func (s *ProductService) Create(ctx context.Context, params ports.CreateProductParams) (*ports.ProductWithCategory, error) {
	category, err := s.activeCategory(ctx, params.CategoryID)
	if err != nil {
		return nil, err
	}

	if taken, err := s.products.ExistsByName(ctx, params.Name, ""); err != nil {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	} else if taken {
		return nil, fmt.Errorf("%w: a product named %q already exists", domain.ErrDuplicateProduct, params.Name)
	}

	if sku := strings.TrimSpace(params.SKU); sku != "" {
		if taken, err := s.products.ExistsBySKU(ctx, sku, ""); err != nil {
			return nil, fmt.Errorf("failed to check product sku: %w", err)
		} else if taken {
			return nil, fmt.Errorf("%w: sku %q already exists", domain.ErrDuplicateProduct, sku)
		}
	}

	price, err := domain.NewMoney(params.Price, currencyOrDefault(params.Currency))
	if err != nil {
		return nil, err
	}
	stock, err := domain.NewStockQuantity(params.Stock)
	if err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(params.Name, params.Description, price, params.CategoryID, stock, params.SKU)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
		slog.String("category_id", product.CategoryID))

	return &ports.ProductWithCategory{Product: product, CategoryName: category.Name}, nil
}

// Update replaces a product's descriptive fields after re-running the
// uniqueness and category checks, excluding the product itself.
func (s *ProductService) Update(ctx context.Context, id string, params ports.UpdateProductParams) (*ports.ProductWithCategory, error) {
	product, err := s.requireProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.activeCategory(ctx, params.CategoryID)
	if err != nil {
		return nil, err
	}

	if taken, err := s.products.ExistsByName(ctx, params.Name, id); err != nil {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	} else if taken {
		return nil, fmt.Errorf("%w: a product named %q already exists", domain.ErrDuplicateProduct, params.Name)
	}

	if sku := strings.TrimSpace(params.SKU); sku != "" && sku != product.SKU {
		if taken, err := s.products.ExistsBySKU(ctx, sku, id); err != nil {
			return nil, fmt.Errorf("failed to check product sku: %w", err)
		} else if taken {
			return nil, fmt.Errorf("%w: sku %q already exists", domain.ErrDuplicateProduct, sku)
		}
	}

	price, err := domain.NewMoney(params.Price, currencyOrDefault(params.Currency))
	if err != nil {
		return nil, err
	}

	if err := product.UpdateInfo(params.Name, params.Description, price, params.CategoryID, params.SKU); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", id))

	return &ports.ProductWithCategory{Product: product, CategoryName: category.Name}, nil
}

// UpdateStock applies one stock mutation, dispatching on the operation
// kind, and persists the result.
func (s *ProductService) UpdateStock(ctx context.Context, id string, update ports.StockUpdate) (*ports.ProductWithCategory, error) {
	product, err := s.requireProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	switch update.Operation {
	case ports.StockOperationSet:
		err = product.UpdateStock(update.Quantity)
	case ports.StockOperationAdd:
		err = product.AddStock(update.Quantity)
	case ports.StockOperationRemove:
		err = product.RemoveStock(update.Quantity)
	default:
		err = fmt.Errorf("%w: unknown stock operation %q", domain.ErrInvalidArgument, update.Operation)
	}
	if err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to persist stock update: %w", err)
	}

	s.logger.InfoContext(ctx, "stock updated",
		slog.String("product_id", id),
		slog.String("operation", string(update.Operation)),
		slog.Int("quantity", update.Quantity),
		slog.Int("stock", product.Stock.Value))

	return &ports.ProductWithCategory{
		Product:      product,
		CategoryName: s.categoryNameOrUnknown(ctx, product.CategoryID),
	}, nil
}

// GetByID retrieves a single product with its category name resolved.
func (s *ProductService) GetByID(ctx context.Context, id string) (*ports.ProductWithCategory, error) {
	product, err := s.requireProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ports.ProductWithCategory{
		Product:      product,
		CategoryName: s.categoryNameOrUnknown(ctx, product.CategoryID),
	}, nil
}

// List returns one page of products matching the query, with category
// names resolved through a single bulk lookup.
func (s *ProductService) List(ctx context.Context, query ports.ProductQuery) (*ports.PagedResult[ports.ProductWithCategory], error) {
	query = query.Normalized()

	products, totalCount, err := s.products.FindPaged(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	items, err := s.resolveCategoryNames(ctx, products)
	if err != nil {
		return nil, err
	}

	return ports.NewPagedResult(items, query.Page, query.PageSize, totalCount), nil
}

// ListLowStock returns the active products whose stock is below the
// threshold, lowest stock first.
func (s *ProductService) ListLowStock(ctx context.Context, threshold int) ([]ports.ProductWithCategory, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold cannot be negative", domain.ErrInvalidArgument)
	}

	products, err := s.products.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	return s.resolveCategoryNames(ctx, products)
}

// Delete removes a product by id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.requireProduct(ctx, id); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

func (s *ProductService) requireProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return product, nil
}

// activeCategory resolves a category that exists and is active; an
// inactive category is treated the same as a missing one.
func (s *ProductService) activeCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil || !category.IsActive {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, categoryID)
	}
	return category, nil
}

func (s *ProductService) categoryNameOrUnknown(ctx context.Context, categoryID string) string {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil || category == nil {
		return UnknownCategoryName
	}
	return category.Name
}

// resolveCategoryNames pairs products with category names via one bulk
// category lookup over the distinct ids on the page.
func (s *ProductService) resolveCategoryNames(ctx context.Context, products []*domain.Product) ([]ports.ProductWithCategory, error) {
	seen := make(map[string]struct{}, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.CategoryID]; !ok {
			seen[p.CategoryID] = struct{}{}
			ids = append(ids, p.CategoryID)
		}
	}

	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		categories, err := s.categories.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category names: %w", err)
		}
		for _, c := range categories {
			names[c.ID] = c.Name
		}
	}

	items := make([]ports.ProductWithCategory, 0, len(products))
	for _, p := range products {
		name, ok := names[p.CategoryID]
		if !ok {
			name = UnknownCategoryName
		}
		items = append(items, ports.ProductWithCategory{Product: p, CategoryName: name})
	}
	return items, nil
}

func currencyOrDefault(currency string) string {
	if strings.TrimSpace(currency) == "" {
		return domain.DefaultCurrency
	}
	return currency
}
