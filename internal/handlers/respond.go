// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hypesoft/catalog-api/internal/core/domain"
)

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// respondDomainError translates domain errors into HTTP statuses.
// Unrecognized errors become a 500 with a generic message.
func respondDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var insufficient *domain.InsufficientStockError

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(w, logger, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		respondError(w, logger, http.StatusNotFound, "Category not found")
	case errors.Is(err, domain.ErrDuplicateProduct),
		errors.Is(err, domain.ErrDuplicateCategory),
		errors.Is(err, domain.ErrCategoryInUse):
		respondError(w, logger, http.StatusConflict, err.Error())
	case errors.As(err, &insufficient):
		respondError(w, logger, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		respondError(w, logger, http.StatusBadRequest, err.Error())
	default:
		respondError(w, logger, http.StatusInternalServerError, "Internal server error")
	}
}
