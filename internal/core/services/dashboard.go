// internal/core/services/dashboard.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// DashboardService composes catalog summary statistics. The seven
// independent reads fan out concurrently and are joined before the
// response is built; the first failure cancels the rest.
type DashboardService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	logger     *slog.Logger
}

// Statically assert that *DashboardService implements the DashboardService port.
var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service.
func NewDashboardService(products ports.ProductRepository, categories ports.CategoryRepository, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		products:   products,
		categories: categories,
		logger:     logger.With(slog.String("service", "dashboard")),
	}
}

// Load builds the dashboard summary. Category names are resolved after
// all counts return, via one bulk category read.
func (s *DashboardService) Load(ctx context.Context, params ports.DashboardParams) (*ports.Dashboard, error) {
	params = params.Normalized()

	var (
		totalProducts    int64
		totalCategories  int64
		lowStockProducts []*domain.Product
		totalStockValue  decimal.Decimal
		activeProducts   int64
		inactiveProducts int64
		categoryCounts   map[string]int
		recentProducts   []*domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		totalProducts, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalCategories, err = s.categories.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		lowStockProducts, err = s.products.FindLowStock(gctx, params.LowStockThreshold)
		return err
	})
	g.Go(func() (err error) {
		totalStockValue, err = s.products.TotalStockValue(gctx)
		return err
	})
	g.Go(func() (err error) {
		activeProducts, err = s.products.CountByActive(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		inactiveProducts, err = s.products.CountByActive(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		categoryCounts, err = s.products.CountByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		recentProducts, err = s.products.FindMostRecent(gctx, params.RecentProductsCount)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	totalValue, err := domain.NewMoney(totalStockValue, domain.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock value: %w", err)
	}

	categoryStats := make([]ports.CategoryStat, 0, len(categoryCounts))
	for id, count := range categoryCounts {
		name, ok := names[id]
		if !ok {
			name = UnknownCategoryName
		}
		categoryStats = append(categoryStats, ports.CategoryStat{
			CategoryID:   id,
			CategoryName: name,
			ProductCount: count,
		})
	}
	sort.Slice(categoryStats, func(i, j int) bool {
		if categoryStats[i].ProductCount != categoryStats[j].ProductCount {
			return categoryStats[i].ProductCount > categoryStats[j].ProductCount
		}
		return categoryStats[i].CategoryName < categoryStats[j].CategoryName
	})

	dashboard := &ports.Dashboard{
		Stats: ports.DashboardStats{
			TotalProducts:            int(totalProducts),
			TotalCategories:          int(totalCategories),
			LowStockProducts:         len(lowStockProducts),
			TotalStockValue:          totalValue.Amount,
			FormattedTotalStockValue: totalValue.String(),
			ActiveProducts:           int(activeProducts),
			InactiveProducts:         int(inactiveProducts),
		},
		LowStockProducts: pairWithNames(lowStockProducts, names),
		CategoryStats:    categoryStats,
		RecentProducts:   pairWithNames(recentProducts, names),
	}

	s.logger.DebugContext(ctx, "dashboard loaded",
		slog.Int("total_products", dashboard.Stats.TotalProducts),
		slog.Int("low_stock", dashboard.Stats.LowStockProducts))

	return dashboard, nil
}

func pairWithNames(products []*domain.Product, names map[string]string) []ports.ProductWithCategory {
	items := make([]ports.ProductWithCategory, 0, len(products))
	for _, p := range products {
		name, ok := names[p.CategoryID]
		if !ok {
			name = UnknownCategoryName
		}
		items = append(items, ports.ProductWithCategory{Product: p, CategoryName: name})
	}
	return items
}
