// internal/handlers/export_handler_test.go
package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hypesoft/catalog-api/internal/core/ports"
	"github.com/hypesoft/catalog-api/internal/handlers"
	"github.com/hypesoft/catalog-api/test/helpers"
	"github.com/hypesoft/catalog-api/test/mocks"
)

func TestExportHandler_ExportProducts(t *testing.T) {
	item := testProductWithCategory(t)

	t.Run("exports_single_page_as_xlsx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockProductService(ctrl)
		mockService.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, query ports.ProductQuery) (*ports.PagedResult[ports.ProductWithCategory], error) {
				assert.Equal(t, ports.SortByName, query.SortBy)
				assert.True(t, query.Ascending)
				assert.Equal(t, ports.MaxPageSize, query.PageSize)
				return ports.NewPagedResult([]ports.ProductWithCategory{*item}, 1, ports.MaxPageSize, 1), nil
			})

		handler := handlers.NewExportHandler(mockService, helpers.TestLogger())

		req := httptest.NewRequest("GET", "/api/v1/export/products", nil)
		w := httptest.NewRecorder()

		handler.ExportProducts(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "products_export_")
		assert.NotZero(t, w.Body.Len())
	})

	t.Run("pages_through_the_full_result_set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		totalCount := int64(ports.MaxPageSize + 1)

		mockService := mocks.NewMockProductService(ctrl)
		first := mockService.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, query ports.ProductQuery) (*ports.PagedResult[ports.ProductWithCategory], error) {
				assert.Equal(t, 1, query.Page)
				return ports.NewPagedResult([]ports.ProductWithCategory{*item}, 1, ports.MaxPageSize, totalCount), nil
			})
		mockService.EXPECT().
			List(gomock.Any(), gomock.Any()).
			After(first).
			DoAndReturn(func(ctx context.Context, query ports.ProductQuery) (*ports.PagedResult[ports.ProductWithCategory], error) {
				assert.Equal(t, 2, query.Page)
				return ports.NewPagedResult([]ports.ProductWithCategory{*item}, 2, ports.MaxPageSize, totalCount), nil
			})

		handler := handlers.NewExportHandler(mockService, helpers.TestLogger())

		req := httptest.NewRequest("GET", "/api/v1/export/products", nil)
		w := httptest.NewRecorder()

		handler.ExportProducts(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forwards_filters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockProductService(ctrl)
		mockService.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, query ports.ProductQuery) (*ports.PagedResult[ports.ProductWithCategory], error) {
				assert.Equal(t, "mouse", query.Search)
				assert.Equal(t, "cat-123", query.CategoryID)
				require.NotNil(t, query.IsActive)
				assert.True(t, *query.IsActive)
				return ports.NewPagedResult([]ports.ProductWithCategory{}, 1, ports.MaxPageSize, 0), nil
			})

		handler := handlers.NewExportHandler(mockService, helpers.TestLogger())

		req := httptest.NewRequest("GET",
			"/api/v1/export/products?search=mouse&category_id=cat-123&is_active=true", nil)
		w := httptest.NewRecorder()

		handler.ExportProducts(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("service_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := mocks.NewMockProductService(ctrl)
		mockService.EXPECT().
			List(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		handler := handlers.NewExportHandler(mockService, helpers.TestLogger())

		req := httptest.NewRequest("GET", "/api/v1/export/products", nil)
		w := httptest.NewRecorder()

		handler.ExportProducts(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
