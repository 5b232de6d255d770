// internal/handlers/dto.go
package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// ProductResponse is the wire shape of a product.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	FormattedPrice string          `json:"formatted_price"`
	CategoryID     string          `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	Stock          int             `json:"stock"`
	IsLowStock     bool            `json:"is_low_stock"`
	IsActive       bool            `json:"is_active"`
	SKU            string          `json:"sku,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toProductResponse(p ports.ProductWithCategory) ProductResponse {
	return ProductResponse{
		ID:             p.Product.ID,
		Name:           p.Product.Name,
		Description:    p.Product.Description,
		Price:          p.Product.Price.Amount,
		Currency:       p.Product.Price.Currency,
		FormattedPrice: p.Product.Price.String(),
		CategoryID:     p.Product.CategoryID,
		CategoryName:   p.CategoryName,
		Stock:          p.Product.Stock.Value,
		IsLowStock:     p.Product.IsLowStock(domain.DefaultLowStockThreshold),
		IsActive:       p.Product.IsActive,
		SKU:            p.Product.SKU,
		CreatedAt:      p.Product.CreatedAt,
		UpdatedAt:      p.Product.UpdatedAt,
	}
}

func toProductResponses(products []ports.ProductWithCategory) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}
	return responses
}

// CategoryResponse is the wire shape of a category.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toCategoryResponse(c ports.CategoryWithCount) CategoryResponse {
	return CategoryResponse{
		ID:           c.Category.ID,
		Name:         c.Category.Name,
		Description:  c.Category.Description,
		IsActive:     c.Category.IsActive,
		ProductCount: c.ProductCount,
		CreatedAt:    c.Category.CreatedAt,
		UpdatedAt:    c.Category.UpdatedAt,
	}
}

// PagedResponse wraps a page of items with paging metadata.
type PagedResponse[T any] struct {
	Data        []T   `json:"data"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

func toPagedResponse[S, T any](result *ports.PagedResult[S], convert func(S) T) PagedResponse[T] {
	data := make([]T, 0, len(result.Items))
	for _, item := range result.Items {
		data = append(data, convert(item))
	}
	return PagedResponse[T]{
		Data:        data,
		Page:        result.Page,
		PageSize:    result.PageSize,
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages,
		HasPrevious: result.HasPrevious,
		HasNext:     result.HasNext,
	}
}
