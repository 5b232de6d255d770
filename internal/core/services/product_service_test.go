// internal/core/services/product_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
	"github.com/hypesoft/catalog-api/internal/core/services"
	"github.com/hypesoft/catalog-api/test/helpers"
	"github.com/hypesoft/catalog-api/test/mocks"
)

func validCreateParams(categoryID string) ports.CreateProductParams {
	return ports.CreateProductParams{
		Name:        "Wireless Mouse",
		Description: "A compact mouse",
		Price:       decimal.NewFromFloat(49.90),
		CategoryID:  categoryID,
		Stock:       20,
		SKU:         "ELEC-0042",
	}
}

func TestProductService_Create(t *testing.T) {
	category := helpers.CreateTestCategory(t)

	tests := []struct {
		name          string
		params        ports.CreateProductParams
		setupMocks    func(*mocks.MockProductRepository, *mocks.MockCategoryRepository)
		expectedError error
		errorContains string
	}{
		{
			name:   "successful_create",
			params: validCreateParams(category.ID),
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
				p.EXPECT().ExistsByName(gomock.Any(), "Wireless Mouse", "").Return(false, nil)
				p.EXPECT().ExistsBySKU(gomock.Any(), "ELEC-0042", "").Return(false, nil)
				p.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, product *domain.Product) error {
						assert.Equal(t, "Wireless Mouse", product.Name)
						assert.Equal(t, category.ID, product.CategoryID)
						assert.Equal(t, 20, product.Stock.Value)
						assert.True(t, product.IsActive)
						return nil
					})
			},
		},
		{
			name:   "category_not_found",
			params: validCreateParams("missing-category"),
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				c.EXPECT().FindByID(gomock.Any(), "missing-category").Return(nil, nil)
			},
			expectedError: domain.ErrCategoryNotFound,
		},
		{
			name:   "inactive_category_rejected",
			params: validCreateParams(category.ID),
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				inactive := helpers.CreateTestCategory(t, func(c *domain.Category) {
					c.IsActive = false
				})
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(inactive, nil)
			},
			expectedError: domain.ErrCategoryNotFound,
		},
		{
			name:   "duplicate_name",
			params: validCreateParams(category.ID),
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
				p.EXPECT().ExistsByName(gomock.Any(), "Wireless Mouse", "").Return(true, nil)
			},
			expectedError: domain.ErrDuplicateProduct,
		},
		{
			name:   "duplicate_sku",
			params: validCreateParams(category.ID),
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
				p.EXPECT().ExistsByName(gomock.Any(), "Wireless Mouse", "").Return(false, nil)
				p.EXPECT().ExistsBySKU(gomock.Any(), "ELEC-0042", "").Return(true, nil)
			},
			expectedError: domain.ErrDuplicateProduct,
		},
		{
			name: "negative_price_rejected",
			params: func() ports.CreateProductParams {
				params := validCreateParams(category.ID)
				params.Price = decimal.NewFromFloat(-1)
				params.SKU = ""
				return params
			}(),
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
				p.EXPECT().ExistsByName(gomock.Any(), "Wireless Mouse", "").Return(false, nil)
			},
			expectedError: domain.ErrInvalidArgument,
		},
		{
			name:   "repository_save_error",
			params: validCreateParams(category.ID),
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
				p.EXPECT().ExistsByName(gomock.Any(), "Wireless Mouse", "").Return(false, nil)
				p.EXPECT().ExistsBySKU(gomock.Any(), "ELEC-0042", "").Return(false, nil)
				p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			errorContains: "failed to save product",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			productRepo := mocks.NewMockProductRepository(ctrl)
			categoryRepo := mocks.NewMockCategoryRepository(ctrl)
			tt.setupMocks(productRepo, categoryRepo)

			service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

			result, err := service.Create(context.Background(), tt.params)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, category.Name, result.CategoryName)
			assert.NotEmpty(t, result.Product.ID)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	category := helpers.CreateTestCategory(t)
	product := helpers.CreateTestProduct(t, category.ID)

	params := ports.UpdateProductParams{
		Name:        "Mechanical Keyboard",
		Description: "Clicky switches",
		Price:       decimal.NewFromFloat(79.90),
		CategoryID:  category.ID,
		SKU:         "ELEC-0099",
	}

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockProductRepository, *mocks.MockCategoryRepository)
		expectedError error
	}{
		{
			name: "successful_update",
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
				p.EXPECT().ExistsByName(gomock.Any(), params.Name, product.ID).Return(false, nil)
				p.EXPECT().ExistsBySKU(gomock.Any(), params.SKU, product.ID).Return(false, nil)
				p.EXPECT().Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, updated *domain.Product) error {
						assert.Equal(t, "Mechanical Keyboard", updated.Name)
						assert.Equal(t, "ELEC-0099", updated.SKU)
						return nil
					})
			},
		},
		{
			name: "product_not_found",
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(nil, nil)
			},
			expectedError: domain.ErrProductNotFound,
		},
		{
			name: "duplicate_name_excludes_self",
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
				p.EXPECT().ExistsByName(gomock.Any(), params.Name, product.ID).Return(true, nil)
			},
			expectedError: domain.ErrDuplicateProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			productRepo := mocks.NewMockProductRepository(ctrl)
			categoryRepo := mocks.NewMockCategoryRepository(ctrl)
			tt.setupMocks(productRepo, categoryRepo)

			service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

			result, err := service.Update(context.Background(), product.ID, params)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, category.Name, result.CategoryName)
		})
	}
}

func TestProductService_UpdateStock(t *testing.T) {
	category := helpers.CreateTestCategory(t)

	tests := []struct {
		name               string
		update             ports.StockUpdate
		initialStock       int
		expectedStock      int
		setupMocks         func(*mocks.MockProductRepository, *mocks.MockCategoryRepository, *domain.Product)
		expectedError      error
		expectInsufficient bool
	}{
		{
			name:          "set_replaces_stock",
			update:        ports.StockUpdate{Operation: ports.StockOperationSet, Quantity: 7},
			initialStock:  25,
			expectedStock: 7,
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository, product *domain.Product) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
				p.EXPECT().Update(gomock.Any(), product).Return(nil)
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
			},
		},
		{
			name:          "add_increases_stock",
			update:        ports.StockUpdate{Operation: ports.StockOperationAdd, Quantity: 5},
			initialStock:  25,
			expectedStock: 30,
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository, product *domain.Product) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
				p.EXPECT().Update(gomock.Any(), product).Return(nil)
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
			},
		},
		{
			name:          "remove_decreases_stock",
			update:        ports.StockUpdate{Operation: ports.StockOperationRemove, Quantity: 10},
			initialStock:  25,
			expectedStock: 15,
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository, product *domain.Product) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
				p.EXPECT().Update(gomock.Any(), product).Return(nil)
				c.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)
			},
		},
		{
			name:         "remove_beyond_available_fails",
			update:       ports.StockUpdate{Operation: ports.StockOperationRemove, Quantity: 26},
			initialStock: 25,
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository, product *domain.Product) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
			},
			expectInsufficient: true,
		},
		{
			name:         "unknown_operation_rejected",
			update:       ports.StockUpdate{Operation: "destroy", Quantity: 1},
			initialStock: 25,
			setupMocks: func(p *mocks.MockProductRepository, c *mocks.MockCategoryRepository, product *domain.Product) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
			},
			expectedError: domain.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			product := helpers.CreateTestProduct(t, category.ID, func(p *domain.Product) {
				p.Stock.Value = tt.initialStock
			})

			productRepo := mocks.NewMockProductRepository(ctrl)
			categoryRepo := mocks.NewMockCategoryRepository(ctrl)
			tt.setupMocks(productRepo, categoryRepo, product)

			service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

			result, err := service.UpdateStock(context.Background(), product.ID, tt.update)

			if tt.expectInsufficient {
				var insufficientErr *domain.InsufficientStockError
				require.ErrorAs(t, err, &insufficientErr)
				assert.Equal(t, tt.initialStock, insufficientErr.Available)
				assert.Nil(t, result)
				assert.Equal(t, tt.initialStock, product.Stock.Value)
				return
			}
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				assert.Equal(t, tt.initialStock, product.Stock.Value)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.expectedStock, result.Product.Stock.Value)
		})
	}
}

func TestProductService_GetByID(t *testing.T) {
	category := helpers.CreateTestCategory(t)
	product := helpers.CreateTestProduct(t, category.ID)

	t.Run("returns_product_with_category_name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		productRepo := mocks.NewMockProductRepository(ctrl)
		categoryRepo := mocks.NewMockCategoryRepository(ctrl)
		productRepo.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
		categoryRepo.EXPECT().FindByID(gomock.Any(), category.ID).Return(category, nil)

		service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

		result, err := service.GetByID(context.Background(), product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, result.Product.ID)
		assert.Equal(t, category.Name, result.CategoryName)
	})

	t.Run("falls_back_when_category_is_gone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		productRepo := mocks.NewMockProductRepository(ctrl)
		categoryRepo := mocks.NewMockCategoryRepository(ctrl)
		productRepo.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
		categoryRepo.EXPECT().FindByID(gomock.Any(), category.ID).Return(nil, nil)

		service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

		result, err := service.GetByID(context.Background(), product.ID)

		require.NoError(t, err)
		assert.Equal(t, services.UnknownCategoryName, result.CategoryName)
	})

	t.Run("not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		productRepo := mocks.NewMockProductRepository(ctrl)
		categoryRepo := mocks.NewMockCategoryRepository(ctrl)
		productRepo.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, nil)

		service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

		result, err := service.GetByID(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Nil(t, result)
	})
}

func TestProductService_List(t *testing.T) {
	category := helpers.CreateTestCategory(t)
	products := helpers.CreateTestProducts(t, category.ID, 3)

	t.Run("resolves_category_names_in_bulk", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		productRepo := mocks.NewMockProductRepository(ctrl)
		categoryRepo := mocks.NewMockCategoryRepository(ctrl)

		productRepo.EXPECT().
			FindPaged(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, query ports.ProductQuery) ([]*domain.Product, int64, error) {
				assert.Equal(t, 1, query.Page)
				assert.Equal(t, ports.DefaultPageSize, query.PageSize)
				assert.Equal(t, ports.SortByCreatedAt, query.SortBy)
				return products, 3, nil
			})
		categoryRepo.EXPECT().
			FindByIDs(gomock.Any(), []string{category.ID}).
			Return([]*domain.Category{category}, nil)

		service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

		result, err := service.List(context.Background(), ports.ProductQuery{})

		require.NoError(t, err)
		require.Len(t, result.Items, 3)
		assert.Equal(t, int64(3), result.TotalCount)
		assert.Equal(t, 1, result.Page)
		assert.False(t, result.HasNext)
		for _, item := range result.Items {
			assert.Equal(t, category.Name, item.CategoryName)
		}
	})

	t.Run("repository_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		productRepo := mocks.NewMockProductRepository(ctrl)
		categoryRepo := mocks.NewMockCategoryRepository(ctrl)
		productRepo.EXPECT().
			FindPaged(gomock.Any(), gomock.Any()).
			Return(nil, int64(0), errors.New("connection refused"))

		service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

		result, err := service.List(context.Background(), ports.ProductQuery{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list products")
		assert.Nil(t, result)
	})
}

func TestProductService_ListLowStock(t *testing.T) {
	category := helpers.CreateTestCategory(t)

	t.Run("returns_products_under_threshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		low := helpers.CreateTestProduct(t, category.ID, func(p *domain.Product) {
			p.Stock.Value = 3
		})

		productRepo := mocks.NewMockProductRepository(ctrl)
		categoryRepo := mocks.NewMockCategoryRepository(ctrl)
		productRepo.EXPECT().
			FindLowStock(gomock.Any(), domain.DefaultLowStockThreshold).
			Return([]*domain.Product{low}, nil)
		categoryRepo.EXPECT().
			FindByIDs(gomock.Any(), []string{category.ID}).
			Return([]*domain.Category{category}, nil)

		service := services.NewProductService(productRepo, categoryRepo, helpers.TestLogger())

		items, err := service.ListLowStock(context.Background(), domain.DefaultLowStockThreshold)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, low.ID, items[0].Product.ID)
	})

	t.Run("negative_threshold_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := services.NewProductService(
			mocks.NewMockProductRepository(ctrl),
			mocks.NewMockCategoryRepository(ctrl),
			helpers.TestLogger())

		items, err := service.ListLowStock(context.Background(), -1)

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		assert.Nil(t, items)
	})
}

func TestProductService_Delete(t *testing.T) {
	category := helpers.CreateTestCategory(t)
	product := helpers.CreateTestProduct(t, category.ID)

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockProductRepository)
		expectedError error
		errorContains string
	}{
		{
			name: "successful_delete",
			setupMocks: func(p *mocks.MockProductRepository) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
				p.EXPECT().Delete(gomock.Any(), product.ID).Return(nil)
			},
		},
		{
			name: "product_not_found",
			setupMocks: func(p *mocks.MockProductRepository) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(nil, nil)
			},
			expectedError: domain.ErrProductNotFound,
		},
		{
			name: "repository_delete_error",
			setupMocks: func(p *mocks.MockProductRepository) {
				p.EXPECT().FindByID(gomock.Any(), product.ID).Return(product, nil)
				p.EXPECT().Delete(gomock.Any(), product.ID).Return(errors.New("connection refused"))
			},
			errorContains: "failed to delete product",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			productRepo := mocks.NewMockProductRepository(ctrl)
			tt.setupMocks(productRepo)

			service := services.NewProductService(productRepo, mocks.NewMockCategoryRepository(ctrl), helpers.TestLogger())

			err := service.Delete(context.Background(), product.ID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
		})
	}
}
