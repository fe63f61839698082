package repository

import (
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(wishlist *model.Wishlist) error
	FindByID(id uint) (*model.Wishlist, error)
	FindByUserID(userID uint) ([]model.Wishlist, error)
	Update(wishlist *model.Wishlist) error
	Delete(id uint) error
	AddItem(item *model.WishlistItem) error
	FindItem(wishlistID, productID uint) (*model.WishlistItem, error)
	DeleteItem(wishlistID, productID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(wishlist *model.Wishlist) error {
	logger.Debug("Creating wishlist in database", map[string]interface{}{
		"user_id": wishlist.UserID,
		"name":    wishlist.Name,
	})

	if err := r.db.Create(wishlist).Error; err != nil {
		logger.Error("Failed to create wishlist in database", err, map[string]interface{}{
			"user_id": wishlist.UserID,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) FindByID(id uint) (*model.Wishlist, error) {
	var wishlist model.Wishlist
	if err := r.db.Preload("Items.Product").First(&wishlist, id).Error; err != nil {
		logger.Error("Failed to find wishlist by ID in database", err, map[string]interface{}{
			"wishlist_id": id,
		})
		return nil, err
	}
	return &wishlist, nil
}

func (r *wishlistRepository) FindByUserID(userID uint) ([]model.Wishlist, error) {
	var wishlists []model.Wishlist
	if err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&wishlists).Error; err != nil {
		logger.Error("Failed to find wishlists by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return wishlists, nil
}

func (r *wishlistRepository) Update(wishlist *model.Wishlist) error {
	if err := r.db.Omit("Items").Save(wishlist).Error; err != nil {
		logger.Error("Failed to update wishlist in database", err, map[string]interface{}{
			"wishlist_id": wishlist.ID,
		})
		return err
	}
	return nil
}

// Delete removes the wishlist and its items together.
func (r *wishlistRepository) Delete(id uint) error {
	logger.Debug("Deleting wishlist from database", map[string]interface{}{
		"wishlist_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&model.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Wishlist{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete wishlist from database", err, map[string]interface{}{
			"wishlist_id": id,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) AddItem(item *model.WishlistItem) error {
	logger.Debug("Adding wishlist item in database", map[string]interface{}{
		"wishlist_id": item.WishlistID,
		"product_id":  item.ProductID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to add wishlist item in database", err, map[string]interface{}{
			"wishlist_id": item.WishlistID,
			"product_id":  item.ProductID,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) FindItem(wishlistID, productID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) DeleteItem(wishlistID, productID uint) error {
	if err := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&model.WishlistItem{}).Error; err != nil {
		logger.Error("Failed to delete wishlist item from database", err, map[string]interface{}{
			"wishlist_id": wishlistID,
			"product_id":  productID,
		})
		return err
	}
	return nil
}
