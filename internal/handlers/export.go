// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// ExportHandler handles export operations
type ExportHandler struct {
	products ports.ProductService
	logger   *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(products ports.ProductService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		products: products,
		logger:   logger.With(slog.String("handler", "export")),
	}
}

// ExportProducts handles GET /api/v1/export/products
func (h *ExportHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := ports.ProductQuery{
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("category_id"),
		SortBy:     ports.SortByName,
		Ascending:  true,
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		if val, err := strconv.ParseBool(active); err == nil {
			query.IsActive = &val
		}
	}

	products, err := h.collectAll(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve products for export",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	excelData, err := h.generateExcelFile(products)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("products_export_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("total_rows", len(products)),
		slog.String("filename", filename))
}

// collectAll pages through the full filtered result set.
func (h *ExportHandler) collectAll(ctx context.Context, query ports.ProductQuery) ([]ports.ProductWithCategory, error) {
	var all []ports.ProductWithCategory

	query.Page = 1
	query.PageSize = ports.MaxPageSize

	for {
		result, err := h.products.List(ctx, query)
		if err != nil {
			return nil, err
		}

		all = append(all, result.Items...)

		if !result.HasNext {
			return all, nil
		}
		query.Page++
	}
}

func (h *ExportHandler) generateExcelFile(products []ports.ProductWithCategory) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{
		"ID", "Name", "Description", "Price", "Currency",
		"Category", "Stock", "Active", "SKU", "Created At", "Updated At",
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, p := range products {
		row := sheet.AddRow()
		values := []string{
			p.Product.ID,
			p.Product.Name,
			p.Product.Description,
			p.Product.Price.Amount.StringFixed(2),
			p.Product.Price.Currency,
			p.CategoryName,
			strconv.Itoa(p.Product.Stock.Value),
			yesNo(p.Product.IsActive),
			p.Product.SKU,
			p.Product.CreatedAt.Format("2006-01-02 15:04:05"),
			p.Product.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for _, value := range values {
			row.AddCell().Value = value
		}
	}

	for i := range headers {
		sheet.SetColWidth(i, i, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
