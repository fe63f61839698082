package repository

import (
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByID(id uint) (*model.Payment, error)
	FindByOrderID(orderID uint) ([]model.Payment, error)
	FindByTransactionID(transactionID string) (*model.Payment, error)
	Update(payment *model.Payment) error
	SumCompletedByOrder(orderID uint) (float64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	logger.Debug("Creating payment in database", map[string]interface{}{
		"order_id": payment.OrderID,
		"user_id":  payment.UserID,
		"amount":   payment.Amount,
		"method":   payment.PaymentMethod,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"order_id": payment.OrderID,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		logger.Error("Failed to find payment by ID in database", err, map[string]interface{}{
			"payment_id": id,
		})
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByOrderID(orderID uint) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		logger.Error("Failed to find payments by order ID in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByTransactionID(transactionID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		logger.Error("Failed to find payment by transaction ID in database", err, map[string]interface{}{
			"transaction_id": transactionID,
		})
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	logger.Debug("Updating payment in database", map[string]interface{}{
		"payment_id": payment.ID,
		"status":     payment.Status,
	})

	if err := r.db.Save(payment).Error; err != nil {
		logger.Error("Failed to update payment in database", err, map[string]interface{}{
			"payment_id": payment.ID,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) SumCompletedByOrder(orderID uint) (float64, error) {
	var total float64
	err := r.db.Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, model.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("Failed to sum completed payments in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return 0, err
	}
	return total, nil
}
