// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	redis_a "github.com/hypesoft/catalog-api/internal/adapters/redis_adapter"
	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service ports.ProductService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ports.ProductService, cache ports.CacheRepository, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "product")),
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	CategoryID  string          `json:"category_id"`
	Stock       int             `json:"stock"`
	SKU         string          `json:"sku,omitempty"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	CategoryID  string          `json:"category_id"`
	SKU         string          `json:"sku,omitempty"`
}

// UpdateStockRequest represents the request body for a stock mutation
type UpdateStockRequest struct {
	Operation string `json:"operation"`
	Quantity  int    `json:"quantity"`
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Create(ctx, ports.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		SKU:         req.SKU,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create product",
			slog.String("name", req.Name),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.invalidateDashboard(r)

	respondJSON(w, h.logger, http.StatusCreated, toProductResponse(*product))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toProductResponse(*product))
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := h.parseListQuery(r)

	result, err := h.service.List(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products",
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toPagedResponse(result, toProductResponse))
}

// ListLowStock handles GET /api/v1/products/low-stock
func (h *ProductHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	threshold := domain.DefaultLowStockThreshold
	if t := r.URL.Query().Get("threshold"); t != "" {
		parsed, err := strconv.Atoi(t)
		if err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "Invalid threshold")
			return
		}
		threshold = parsed
	}

	products, err := h.service.ListLowStock(ctx, threshold)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list low stock products",
			slog.Int("threshold", threshold),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"threshold": threshold,
		"products":  toProductResponses(products),
	})
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Update(ctx, id, ports.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update product",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.invalidateDashboard(r)

	respondJSON(w, h.logger, http.StatusOK, toProductResponse(*product))
}

// UpdateStock handles PATCH /api/v1/products/{id}/stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.UpdateStock(ctx, id, ports.StockUpdate{
		Operation: ports.StockOperation(req.Operation),
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update stock",
			slog.String("id", id),
			slog.String("operation", req.Operation),
			slog.Int("quantity", req.Quantity),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.invalidateDashboard(r)

	respondJSON(w, h.logger, http.StatusOK, toProductResponse(*product))
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.invalidateDashboard(r)

	h.logger.InfoContext(ctx, "product deleted", slog.String("id", id))

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
		"id":      id,
	})
}

func (h *ProductHandler) parseID(w http.ResponseWriter, r *http.Request) (string, bool) {
	idStr := r.PathValue("id")
	if _, err := uuid.Parse(idStr); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return "", false
	}
	return idStr, true
}

func (h *ProductHandler) parseListQuery(r *http.Request) ports.ProductQuery {
	query := ports.ProductQuery{
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("category_id"),
		SortBy:     r.URL.Query().Get("sort"),
		Ascending:  r.URL.Query().Get("order") == "asc",
		Page:       1,
		PageSize:   ports.DefaultPageSize,
	}

	if active := r.URL.Query().Get("is_active"); active != "" {
		if val, err := strconv.ParseBool(active); err == nil {
			query.IsActive = &val
		}
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			query.Page = p
		}
	}

	if size := r.URL.Query().Get("page_size"); size != "" {
		if s, err := strconv.Atoi(size); err == nil {
			query.PageSize = s
		}
	}

	return query
}

// invalidateDashboard drops cached dashboard entries after a write.
// Failures degrade to stale reads until the TTL expires.
func (h *ProductHandler) invalidateDashboard(r *http.Request) {
	if h.cache == nil {
		return
	}
	pattern := string(redis_a.PrefixDashboard) + ":*"
	if err := h.cache.DeletePattern(r.Context(), pattern); err != nil {
		h.logger.WarnContext(r.Context(), "failed to invalidate dashboard cache",
			slog.String("error", err.Error()))
	}
}
