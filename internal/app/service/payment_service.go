package service

import (
	"errors"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentAccessDenied = errors.New("unauthorized access to payment")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrPaymentNotPending   = errors.New("payment is not pending")
)

type PaymentService interface {
	RecordPayment(userID, orderID uint, method string, amount float64) (*model.Payment, error)
	CompletePayment(paymentID uint) error
	FailPayment(paymentID uint) error
	GetPayment(userID, paymentID uint) (*model.Payment, error)
	ListPaymentsForOrder(userID, orderID uint) ([]model.Payment, error)
}

type paymentService struct {
	db          *gorm.DB
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

func NewPaymentService(db *gorm.DB, paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) PaymentService {
	return &paymentService{
		db:          db,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// RecordPayment opens a pending payment against the order. Partial payments
// and retries show up as separate rows.
func (s *paymentService) RecordPayment(userID, orderID uint, method string, amount float64) (*model.Payment, error) {
	logger.Debug("Recording payment", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"method":   method,
		"amount":   amount,
	})

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}

	transactionID := util.NewTransactionID()
	payment := &model.Payment{
		OrderID:       orderID,
		UserID:        userID,
		PaymentMethod: method,
		Amount:        amount,
		Status:        model.PaymentStatusPending,
		TransactionID: &transactionID,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	logger.Info("Payment recorded", map[string]interface{}{
		"payment_id":     payment.ID,
		"order_id":       orderID,
		"transaction_id": transactionID,
	})
	return payment, nil
}

// CompletePayment settles a pending payment. Once the completed payments
// cover the order total, the order itself moves to paid. Both writes share
// one transaction.
func (s *paymentService) CompletePayment(paymentID uint) error {
	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if payment.Status != model.PaymentStatusPending {
		return ErrPaymentNotPending
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Payment{}).Where("id = ?", paymentID).
			Update("status", model.PaymentStatusCompleted).Error; err != nil {
			return err
		}

		var order model.Order
		if err := tx.First(&order, payment.OrderID).Error; err != nil {
			return err
		}

		var covered float64
		if err := tx.Model(&model.Payment{}).
			Where("order_id = ? AND status = ?", order.ID, model.PaymentStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&covered).Error; err != nil {
			return err
		}
		if covered >= order.TotalAmount && order.Status == model.OrderStatusPending {
			logger.Info("Order fully paid", map[string]interface{}{
				"order_id":     order.ID,
				"total_amount": order.TotalAmount,
				"covered":      covered,
			})
			return tx.Model(&model.Order{}).Where("id = ?", order.ID).
				Updates(map[string]interface{}{
					"status":  model.OrderStatusPaid,
					"is_paid": true,
				}).Error
		}
		return nil
	})
}

func (s *paymentService) FailPayment(paymentID uint) error {
	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if payment.Status != model.PaymentStatusPending {
		return ErrPaymentNotPending
	}

	payment.Status = model.PaymentStatusFailed
	return s.paymentRepo.Update(payment)
}

func (s *paymentService) GetPayment(userID, paymentID uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, ErrPaymentAccessDenied
	}
	return payment, nil
}

func (s *paymentService) ListPaymentsForOrder(userID, orderID uint) ([]model.Payment, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return s.paymentRepo.FindByOrderID(orderID)
}
