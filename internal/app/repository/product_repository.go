package repository

import (
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows and orders product listings. Zero values mean
// "no constraint".
type ProductFilter struct {
	CategoryID    *uint
	MinPrice      *float64
	MaxPrice      *float64
	ActiveOnly    bool
	Search        string
	SortBy        string // "price" or "created_at"
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindByID(id uint) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	CountByCategory(categoryID uint) (int64, error)
	ReplaceCategories(productID uint, categoryIDs []uint) error
	Update(product *model.Product) error
	UpdateStock(id uint, delta int) error
	Delete(id uint) error
	CountReferences(id uint) (cartRows int64, orderRows int64, err error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"sku":  product.SKU,
		"name": product.Name,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"sku": product.SKU,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Debug("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Categories").First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Categories").Where("sku = ?", sku).First(&product).Error; err != nil {
		logger.Error("Failed to find product by SKU in database", err, map[string]interface{}{
			"sku": sku,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter in database", map[string]interface{}{
		"category_id": filter.CategoryID,
		"active_only": filter.ActiveOnly,
		"search":      filter.Search,
	})

	query := r.db.Model(&model.Product{})

	if filter.CategoryID != nil {
		query = query.
			Joins("JOIN products_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", pattern, pattern)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case "price":
		query = query.Order("products.price " + direction)
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Preload("Categories").Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter in database", err, nil)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProductCategory{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count products by category in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return 0, err
	}
	return count, nil
}

// ReplaceCategories swaps the full category assignment of a product in one
// transaction: old association rows go, the new set comes in.
func (r *productRepository) ReplaceCategories(productID uint, categoryIDs []uint) error {
	logger.Debug("Replacing product categories in database", map[string]interface{}{
		"product_id": productID,
		"count":      len(categoryIDs),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductCategory{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		links := make([]model.ProductCategory, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			links = append(links, model.ProductCategory{
				ProductID:  productID,
				CategoryID: categoryID,
			})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		logger.Error("Failed to replace product categories in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})

	if err := r.db.Omit("Categories").Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// UpdateStock adjusts stock by delta atomically; callers validate the result
// stays non-negative before committing an order.
func (r *productRepository) UpdateStock(id uint, delta int) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
		logger.Error("Failed to update product stock in database", err, map[string]interface{}{
			"product_id": id,
			"delta":      delta,
		})
		return err
	}
	return nil
}

// Delete removes the product together with its category links, reviews and
// wishlist entries. Cart rows and order items must be checked by the caller
// first; they block deletion.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) CountReferences(id uint) (int64, int64, error) {
	var cartRows, orderRows int64
	if err := r.db.Model(&model.CartItem{}).Where("product_id = ?", id).Count(&cartRows).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&orderRows).Error; err != nil {
		return 0, 0, err
	}
	return cartRows, orderRows, nil
}
