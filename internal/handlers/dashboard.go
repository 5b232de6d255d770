// internal/handlers/dashboard.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	redis_a "github.com/hypesoft/catalog-api/internal/adapters/redis_adapter"
	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

const dashboardCacheTTL = 5 * time.Minute

// DashboardHandler handles dashboard operations
type DashboardHandler struct {
	service ports.DashboardService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service ports.DashboardService, cache ports.CacheRepository, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := ports.DashboardParams{
		LowStockThreshold:   domain.DefaultLowStockThreshold,
		RecentProductsCount: ports.DefaultRecentProductsCount,
	}
	if t := r.URL.Query().Get("low_stock_threshold"); t != "" {
		parsed, err := strconv.Atoi(t)
		if err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "Invalid low_stock_threshold")
			return
		}
		params.LowStockThreshold = parsed
	}
	if c := r.URL.Query().Get("recent_count"); c != "" {
		parsed, err := strconv.Atoi(c)
		if err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "Invalid recent_count")
			return
		}
		params.RecentProductsCount = parsed
	}
	params = params.Normalized()

	load := func() (interface{}, error) {
		dashboard, err := h.service.Load(ctx, params)
		if err != nil {
			return nil, err
		}
		return toDashboardResponse(dashboard), nil
	}

	var response DashboardResponse
	if h.cache != nil {
		cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "summary",
			strconv.Itoa(params.LowStockThreshold),
			strconv.Itoa(params.RecentProductsCount))
		if err := h.cache.GetOrSet(ctx, cacheKey, &response, load, dashboardCacheTTL); err != nil {
			h.logger.ErrorContext(ctx, "failed to load dashboard",
				slog.String("error", err.Error()))
			respondError(w, h.logger, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
	} else {
		data, err := load()
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to load dashboard",
				slog.String("error", err.Error()))
			respondError(w, h.logger, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
		response = data.(DashboardResponse)
	}

	respondJSON(w, h.logger, http.StatusOK, response)
}

// DashboardResponse is the wire shape of the dashboard.
type DashboardResponse struct {
	Stats            ports.DashboardStats `json:"stats"`
	LowStockProducts []ProductResponse    `json:"low_stock_products"`
	CategoryStats    []ports.CategoryStat `json:"category_stats"`
	RecentProducts   []ProductResponse    `json:"recent_products"`
	Timestamp        time.Time            `json:"timestamp"`
}

func toDashboardResponse(d *ports.Dashboard) DashboardResponse {
	return DashboardResponse{
		Stats:            d.Stats,
		LowStockProducts: toProductResponses(d.LowStockProducts),
		CategoryStats:    d.CategoryStats,
		RecentProducts:   toProductResponses(d.RecentProducts),
		Timestamp:        time.Now().UTC(),
	}
}
