//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hypesoft/catalog-api/internal/adapters/db"
	redis_a "github.com/hypesoft/catalog-api/internal/adapters/redis_adapter"
	"github.com/hypesoft/catalog-api/internal/core/services"
	"github.com/hypesoft/catalog-api/internal/handlers"
	"github.com/hypesoft/catalog-api/test/helpers"
)

type CatalogE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *CatalogE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *CatalogE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *CatalogE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *CatalogE2ESuite) TestCompleteCatalogWorkflow() {
	// 1. Create a category
	resp := s.makeRequest("POST", "/categories", map[string]interface{}{
		"name":        "Peripherals",
		"description": "Mice, keyboards and accessories",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var category map[string]interface{}
	s.decodeResponse(resp, &category)
	categoryID := category["id"].(string)
	s.NotEmpty(categoryID)

	// 2. Create a product in it
	resp = s.makeRequest("POST", "/products", map[string]interface{}{
		"name":        "Wireless Mouse",
		"description": "A compact mouse",
		"price":       129.90,
		"category_id": categoryID,
		"stock":       6,
		"sku":         "ELEC-0042",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var product map[string]interface{}
	s.decodeResponse(resp, &product)
	productID := product["id"].(string)
	s.NotEmpty(productID)
	s.Equal(float64(6), product["stock"])

	// 3. Retrieve it
	resp = s.makeRequest("GET", fmt.Sprintf("/products/%s", productID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &product)
	s.Equal("Wireless Mouse", product["name"])

	// 4. Remove stock twice, down to zero
	resp = s.makeRequest("PATCH", fmt.Sprintf("/products/%s/stock", productID), map[string]interface{}{
		"operation": "remove",
		"quantity":  3,
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &product)
	s.Equal(float64(3), product["stock"])

	resp = s.makeRequest("PATCH", fmt.Sprintf("/products/%s/stock", productID), map[string]interface{}{
		"operation": "remove",
		"quantity":  3,
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &product)
	s.Equal(float64(0), product["stock"])

	// 5. Deleting the category is blocked while the product references it
	resp = s.makeRequest("DELETE", fmt.Sprintf("/categories/%s", categoryID), nil)
	s.Equal(http.StatusConflict, resp.StatusCode)

	// 6. Dashboard reflects the zero-stock product
	resp = s.makeRequest("GET", "/dashboard", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var dashboard map[string]interface{}
	s.decodeResponse(resp, &dashboard)
	s.Contains(dashboard, "stats")
	lowStock := dashboard["low_stock_products"].([]interface{})
	s.Len(lowStock, 1)

	// 7. Export the catalog to Excel
	resp = s.makeRequest("GET", "/export/products", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	// 8. Delete the product, then the category goes through
	resp = s.makeRequest("DELETE", fmt.Sprintf("/products/%s", productID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.makeRequest("DELETE", fmt.Sprintf("/categories/%s", categoryID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	// 9. Both are gone
	resp = s.makeRequest("GET", fmt.Sprintf("/products/%s", productID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.makeRequest("GET", fmt.Sprintf("/categories/%s", categoryID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *CatalogE2ESuite) TestSearchMatchesNameOnly() {
	resp := s.makeRequest("POST", "/categories", map[string]interface{}{
		"name": "Silverware",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var category map[string]interface{}
	s.decodeResponse(resp, &category)
	categoryID := category["id"].(string)

	products := []map[string]interface{}{
		{
			"name":        "Victorian Silver Teapot",
			"description": "Sterling teapot from 1890",
			"price":       500.00,
			"category_id": categoryID,
			"stock":       1,
		},
		{
			"name":        "Glass Sculpture",
			"description": "Contemporary silver-tinted glass piece",
			"price":       300.00,
			"category_id": categoryID,
			"stock":       1,
		},
	}
	for _, product := range products {
		resp = s.makeRequest("POST", "/products", product)
		s.Equal(http.StatusCreated, resp.StatusCode)
	}

	// Only the teapot carries "silver" in its name; the sculpture
	// mentions it in the description and must not match.
	resp = s.makeRequest("GET", "/products?search=silver", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var listResponse map[string]interface{}
	s.decodeResponse(resp, &listResponse)
	s.Equal(float64(1), listResponse["total_count"])

	items := listResponse["data"].([]interface{})
	s.Require().Len(items, 1)
	s.Equal("Victorian Silver Teapot", items[0].(map[string]interface{})["name"])
}

func (s *CatalogE2ESuite) startTestServer() *httptest.Server {
	slogger := helpers.TestLogger()
	cache := redis_a.NewCache(s.testRedis.Client, 5*time.Minute, slogger)

	productRepo := db.NewProductRepository(s.testDB.Database, slogger)
	categoryRepo := db.NewCategoryRepository(s.testDB.Database, slogger)

	productService := services.NewProductService(productRepo, categoryRepo, slogger)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, slogger)
	dashboardService := services.NewDashboardService(productRepo, categoryRepo, slogger)

	productHandler := handlers.NewProductHandler(productService, cache, slogger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, cache, slogger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cache, slogger)
	exportHandler := handlers.NewExportHandler(productService, slogger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/products", productHandler.CreateProduct)
	mux.HandleFunc("GET /api/v1/products", productHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/low-stock", productHandler.ListLowStock)
	mux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct)
	mux.HandleFunc("PUT /api/v1/products/{id}", productHandler.UpdateProduct)
	mux.HandleFunc("PATCH /api/v1/products/{id}/stock", productHandler.UpdateStock)
	mux.HandleFunc("DELETE /api/v1/products/{id}", productHandler.DeleteProduct)
	mux.HandleFunc("POST /api/v1/categories", categoryHandler.CreateCategory)
	mux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories)
	mux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory)
	mux.HandleFunc("PUT /api/v1/categories/{id}", categoryHandler.UpdateCategory)
	mux.HandleFunc("DELETE /api/v1/categories/{id}", categoryHandler.DeleteCategory)
	mux.HandleFunc("GET /api/v1/dashboard", dashboardHandler.GetDashboard)
	mux.HandleFunc("GET /api/v1/export/products", exportHandler.ExportProducts)

	return httptest.NewServer(mux)
}

func (s *CatalogE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.NoError(err)

	return resp
}

func (s *CatalogE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestCatalogE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e tests in short mode")
	}
	suite.Run(t, new(CatalogE2ESuite))
}
