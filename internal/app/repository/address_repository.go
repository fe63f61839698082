package repository

import (
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.UserAddress) error
	BulkCreate(addresses []model.UserAddress, batchSize int) error
	FindByID(id uint) (*model.UserAddress, error)
	FindByUserID(userID uint) ([]model.UserAddress, error)
	Update(address *model.UserAddress) error
	Delete(id uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.UserAddress) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"user_id": address.UserID,
		"city":    address.City,
		"country": address.Country,
	})

	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
		})
		return err
	}
	return nil
}

func (r *addressRepository) BulkCreate(addresses []model.UserAddress, batchSize int) error {
	logger.Debug("Bulk creating addresses in database", map[string]interface{}{
		"count":      len(addresses),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(addresses, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create addresses in database", err, map[string]interface{}{
			"count": len(addresses),
		})
		return err
	}
	return nil
}

func (r *addressRepository) FindByID(id uint) (*model.UserAddress, error) {
	var address model.UserAddress
	if err := r.db.First(&address, id).Error; err != nil {
		logger.Error("Failed to find address by ID in database", err, map[string]interface{}{
			"address_id": id,
		})
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) FindByUserID(userID uint) ([]model.UserAddress, error) {
	var addresses []model.UserAddress
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&addresses).Error; err != nil {
		logger.Error("Failed to find addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) Update(address *model.UserAddress) error {
	logger.Debug("Updating address in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})

	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id": address.ID,
		})
		return err
	}
	return nil
}

func (r *addressRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.UserAddress{}, id).Error; err != nil {
		logger.Error("Failed to delete address from database", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}
	return nil
}
