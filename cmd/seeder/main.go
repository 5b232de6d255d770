// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hypesoft/catalog-api/internal/adapters/db"
	"github.com/hypesoft/catalog-api/internal/core/domain"
	"github.com/hypesoft/catalog-api/internal/core/ports"
)

// seedCategory describes one category and the products seeded under it.
type seedCategory struct {
	name        string
	description string
	products    []seedProduct
}

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	sku         string
}

var catalog = []seedCategory{
	{
		name:        "Electronics",
		description: "Phones, computers and consumer electronics",
		products: []seedProduct{
			{"Smartphone X200", "6.5 inch OLED smartphone with 128GB storage", "2499.90", 35, "ELEC-0001"},
			{"Wireless Earbuds Pro", "Noise cancelling true wireless earbuds", "599.90", 120, "ELEC-0002"},
			{"4K Monitor 27\"", "27 inch IPS 4K monitor with USB-C", "1899.00", 18, "ELEC-0003"},
			{"Mechanical Keyboard", "Hot-swappable mechanical keyboard, brown switches", "449.90", 60, "ELEC-0004"},
			{"USB-C Hub", "7-in-1 USB-C hub with HDMI and card reader", "189.90", 4, "ELEC-0005"},
		},
	},
	{
		name:        "Books",
		description: "Printed and digital books",
		products: []seedProduct{
			{"Clean Architecture", "A craftsman's guide to software structure and design", "89.90", 45, "BOOK-0001"},
			{"Domain-Driven Design", "Tackling complexity in the heart of software", "119.90", 22, "BOOK-0002"},
			{"The Pragmatic Programmer", "Your journey to mastery, 20th anniversary edition", "99.90", 8, "BOOK-0003"},
		},
	},
	{
		name:        "Home & Kitchen",
		description: "Appliances and kitchenware",
		products: []seedProduct{
			{"Espresso Machine", "15 bar semi-automatic espresso machine", "1299.00", 12, "HOME-0001"},
			{"Chef Knife 8\"", "Forged stainless steel chef knife", "249.90", 75, "HOME-0002"},
			{"Air Fryer 5L", "Digital air fryer with 8 presets", "499.90", 3, "HOME-0003"},
		},
	},
	{
		name:        "Sports",
		description: "Sports gear and fitness equipment",
		products: []seedProduct{
			{"Yoga Mat", "Non-slip 6mm yoga mat", "129.90", 90, "SPRT-0001"},
			{"Adjustable Dumbbell 24kg", "Quick-select adjustable dumbbell", "899.00", 15, "SPRT-0002"},
			{"Running Shoes Trail", "Lightweight trail running shoes", "549.90", 0, "SPRT-0003"},
		},
	},
	{
		name:        "Toys",
		description: "Toys and games for all ages",
		products: []seedProduct{
			{"Building Blocks Set", "500 piece creative building blocks set", "199.90", 40, "TOYS-0001"},
			{"Remote Control Car", "1:18 scale off-road RC car", "349.90", 6, "TOYS-0002"},
		},
	},
}

func main() {
	var (
		logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun    = flag.Bool("dry-run", false, "Preview changes without modifying database")
		force     = flag.Bool("force", false, "Seed even when products already exist")
		randomize = flag.Bool("randomize-stock", false, "Randomize stock levels instead of using fixed values")
	)
	flag.Parse()

	// Setup logging
	var slogLevel slog.Level
	switch *logLevel {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	dbConfig := db.DefaultConfig()
	dbConfig.Host = getEnv("DB_HOST", dbConfig.Host)
	dbConfig.Port = getEnv("DB_PORT", dbConfig.Port)
	dbConfig.User = getEnv("DB_USER", dbConfig.User)
	dbConfig.Password = getEnv("DB_PASSWORD", dbConfig.Password)
	dbConfig.Database = getEnv("DB_NAME", dbConfig.Database)
	dbConfig.SSLMode = getEnv("DB_SSL_MODE", dbConfig.SSLMode)

	database, err := db.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	productRepo := db.NewProductRepository(database, logger)
	categoryRepo := db.NewCategoryRepository(database, logger)

	// Skip when data is already present unless forced
	existing, err := productRepo.Count(ctx)
	if err != nil {
		logger.Error("Failed to count products", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if existing > 0 && !*force {
		logger.Info("Database already seeded, nothing to do",
			slog.Int64("existing_products", existing))
		fmt.Println("Database already contains products. Use -force to seed anyway.")
		return
	}

	totalCategories := 0
	totalProducts := 0
	var failed []string

	for _, sc := range catalog {
		category, err := seedOneCategory(ctx, categoryRepo, sc, logger, *dryRun)
		if err != nil {
			logger.Error("Failed to seed category",
				slog.String("category", sc.name),
				slog.String("error", err.Error()))
			failed = append(failed, sc.name)
			continue
		}
		totalCategories++

		products, err := buildProducts(sc, category.ID, *randomize)
		if err != nil {
			logger.Error("Failed to build products",
				slog.String("category", sc.name),
				slog.String("error", err.Error()))
			failed = append(failed, sc.name)
			continue
		}

		if !*dryRun {
			if err := productRepo.SaveBatch(ctx, products); err != nil {
				logger.Error("Failed to save products",
					slog.String("category", sc.name),
					slog.String("error", err.Error()))
				failed = append(failed, sc.name)
				continue
			}
		}

		logger.Info("Seeded category",
			slog.String("category", sc.name),
			slog.Int("products", len(products)))
		totalProducts += len(products)
	}

	// Summary
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING OPERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Categories Created: %d\n", totalCategories)
	fmt.Printf("Products Created:   %d\n", totalProducts)

	if len(failed) > 0 {
		fmt.Printf("\nFailed Categories (%d):\n", len(failed))
		for _, name := range failed {
			fmt.Printf("  - %s\n", name)
		}
	}

	logger.Info("Seed operation completed",
		slog.Int("categories_created", totalCategories),
		slog.Int("products_created", totalProducts),
		slog.Int("failed_categories", len(failed)))

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
	}
}

func seedOneCategory(ctx context.Context, repo ports.CategoryRepository, sc seedCategory, logger *slog.Logger, dryRun bool) (*domain.Category, error) {
	category, err := domain.NewCategory(sc.name, sc.description)
	if err != nil {
		return nil, err
	}

	if dryRun {
		logger.Info("Would create category", slog.String("name", sc.name))
		return category, nil
	}

	if err := repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func buildProducts(sc seedCategory, categoryID string, randomize bool) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(sc.products))

	for _, sp := range sc.products {
		amount, err := decimal.NewFromString(sp.price)
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", sp.name, err)
		}

		price, err := domain.NewMoney(amount, domain.DefaultCurrency)
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", sp.name, err)
		}

		stockValue := sp.stock
		if randomize {
			stockValue = rand.Intn(150)
		}
		stock, err := domain.NewStockQuantity(stockValue)
		if err != nil {
			return nil, fmt.Errorf("invalid stock for %s: %w", sp.name, err)
		}

		product, err := domain.NewProduct(sp.name, sp.description, price, categoryID, stock, sp.sku)
		if err != nil {
			return nil, fmt.Errorf("invalid product %s: %w", sp.name, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
