// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hypesoft/catalog-api/internal/adapters/db"
	"github.com/hypesoft/catalog-api/internal/core/domain"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	// Pull PostgreSQL image
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_catalog",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	// Clean up on test completion
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	// Get connection details
	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_catalog",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	// Wait for database to be ready
	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	// Run migrations
	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// CreateTestCategory creates a test category
func CreateTestCategory(t *testing.T, overrides ...func(*domain.Category)) *domain.Category {
	t.Helper()

	category, err := domain.NewCategory("Test Category", "Category used in tests")
	require.NoError(t, err, "Failed to create test category")

	for _, override := range overrides {
		override(category)
	}

	return category
}

// CreateTestProduct creates a test product in the given category
func CreateTestProduct(t *testing.T, categoryID string, overrides ...func(*domain.Product)) *domain.Product {
	t.Helper()

	price, err := domain.NewMoney(decimal.NewFromFloat(99.90), domain.DefaultCurrency)
	require.NoError(t, err, "Failed to create test price")

	stock, err := domain.NewStockQuantity(25)
	require.NoError(t, err, "Failed to create test stock")

	product, err := domain.NewProduct("Test Product", "Product used in tests", price, categoryID, stock, "TEST-0001")
	require.NoError(t, err, "Failed to create test product")

	for _, override := range overrides {
		override(product)
	}

	return product
}

// CreateTestProducts creates multiple test products in the given category
func CreateTestProducts(t *testing.T, categoryID string, count int) []*domain.Product {
	t.Helper()

	products := make([]*domain.Product, count)
	for i := 0; i < count; i++ {
		i := i
		products[i] = CreateTestProduct(t, categoryID, func(p *domain.Product) {
			p.Name = fmt.Sprintf("Test Product %d", i+1)
			p.SKU = fmt.Sprintf("TEST-%04d", i+1)
			p.Price.Amount = decimal.NewFromInt(int64(100 + i*50))
			p.Stock.Value = 10 + i
		})
	}

	return products
}

// SeedTestData persists categories and products through the repositories
func SeedTestData(t *testing.T, database *db.Database, categories []*domain.Category, products []*domain.Product) {
	t.Helper()

	ctx := context.Background()
	categoryRepo := db.NewCategoryRepository(database, TestLogger())
	productRepo := db.NewProductRepository(database, TestLogger())

	for _, category := range categories {
		require.NoError(t, categoryRepo.Save(ctx, category), "Failed to seed category")
	}
	if len(products) > 0 {
		require.NoError(t, productRepo.SaveBatch(ctx, products), "Failed to seed products")
	}
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"products",
		"categories",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}
