package db

import (
	"fmt"
	"log"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database with the full schema
func SetupTestDB() (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := gdb.SetupJoinTable(&model.Product{}, "Categories", &model.ProductCategory{}); err != nil {
		return nil, fmt.Errorf("failed to set up join table: %w", err)
	}
	if err := gdb.SetupJoinTable(&model.Category{}, "Products", &model.ProductCategory{}); err != nil {
		return nil, fmt.Errorf("failed to set up join table: %w", err)
	}

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return gdb, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables, dependents first
func TruncateAllTables(gdb *gorm.DB) error {
	tables := []string{
		"payments", "order_items", "orders",
		"wishlist_items", "wishlists", "shopping_cart", "reviews",
		"products_categories", "products", "categories",
		"user_address", "users",
	}
	for _, table := range tables {
		if err := gdb.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
