package db

import (
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every entity in dependency order. The association table comes
// before the models that declare many2many over it so AutoMigrate keeps its
// composite primary key instead of inventing a synthetic one.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.UserAddress{},
		&model.Category{},
		&model.ProductCategory{},
		&model.Product{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Review{},
	}
}

// Migrate runs database migrations
func Migrate(gdb *gorm.DB) error {
	logger.Info("Running database migrations...")

	if err := gdb.SetupJoinTable(&model.Product{}, "Categories", &model.ProductCategory{}); err != nil {
		logger.Error("Failed to set up products_categories join table", err)
		return err
	}
	if err := gdb.SetupJoinTable(&model.Category{}, "Products", &model.ProductCategory{}); err != nil {
		logger.Error("Failed to set up products_categories join table", err)
		return err
	}

	models := Models()
	if err := gdb.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
