// internal/handlers/category.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	redis_a "github.com/hypesoft/catalog-api/internal/adapters/redis_adapter"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service ports.CategoryService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service ports.CategoryService, cache ports.CacheRepository, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "category")),
	}
}

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.Create(ctx, req.Name, req.Description)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create category",
			slog.String("name", req.Name),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.invalidateDashboard(r)

	respondJSON(w, h.logger, http.StatusCreated, toCategoryResponse(*category))
}

// GetCategory handles GET /api/v1/categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	category, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get category",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toCategoryResponse(*category))
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := ports.CategoryQuery{
		Search:   r.URL.Query().Get("search"),
		Page:     1,
		PageSize: ports.DefaultPageSize,
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

	result, err := h.service.List(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list categories",
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toPagedResponse(result, toCategoryResponse))
}

// UpdateCategory handles PUT /api/v1/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update category",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.invalidateDashboard(r)

	respondJSON(w, h.logger, http.StatusOK, toCategoryResponse(*category))
}

// DeleteCategory handles DELETE /api/v1/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete category",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	h.invalidateDashboard(r)

	h.logger.InfoContext(ctx, "category deleted", slog.String("id", id))

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
		"id":      id,
	})
}

func (h *CategoryHandler) parseID(w http.ResponseWriter, r *http.Request) (string, bool) {
	idStr := r.PathValue("id")
	if _, err := uuid.Parse(idStr); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid category ID format")
		return "", false
	}
	return idStr, true
}

func (h *CategoryHandler) invalidateDashboard(r *http.Request) {
	if h.cache == nil {
		return
	}
	pattern := string(redis_a.PrefixDashboard) + ":*"
	if err := h.cache.DeletePattern(r.Context(), pattern); err != nil {
		h.logger.WarnContext(r.Context(), "failed to invalidate dashboard cache",
			slog.String("error", err.Error()))
	}
}
