// internal/core/ports/dashboard_service.go
package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Dashboard parameter bounds.
const (
	DefaultRecentProductsCount = 5
	MaxRecentProductsCount     = 20
)

// DashboardParams tunes the dashboard summary.
type DashboardParams struct {
	LowStockThreshold   int
	RecentProductsCount int
}

// Normalized clamps the parameters to sane bounds.
func (p DashboardParams) Normalized() DashboardParams {
	if p.LowStockThreshold < 0 {
		p.LowStockThreshold = 0
	}
	if p.RecentProductsCount < 1 {
		p.RecentProductsCount = DefaultRecentProductsCount
	}
	if p.RecentProductsCount > MaxRecentProductsCount {
		p.RecentProductsCount = MaxRecentProductsCount
	}
	return p
}

// DashboardStats holds the summary counters.
type DashboardStats struct {
	TotalProducts            int             `json:"total_products"`
	TotalCategories          int             `json:"total_categories"`
	LowStockProducts         int             `json:"low_stock_products"`
	TotalStockValue          decimal.Decimal `json:"total_stock_value"`
	FormattedTotalStockValue string          `json:"formatted_total_stock_value"`
	ActiveProducts           int             `json:"active_products"`
	InactiveProducts         int             `json:"inactive_products"`
}

// CategoryStat is the per-category product count with its resolved name.
type CategoryStat struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ProductCount int    `json:"product_count"`
}

// Dashboard is the composed summary of independent catalog reads.
type Dashboard struct {
	Stats            DashboardStats        `json:"stats"`
	LowStockProducts []ProductWithCategory `json:"low_stock_products"`
	CategoryStats    []CategoryStat        `json:"category_stats"`
	RecentProducts   []ProductWithCategory `json:"recent_products"`
}

// DashboardService composes the dashboard from concurrent repository
// reads. Any sub-query failure fails the whole load.
type DashboardService interface {
	Load(ctx context.Context, params DashboardParams) (*Dashboard, error)
}
