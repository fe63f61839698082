package service

import (
	"errors"
	"math"
	"time"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderAccessDenied       = errors.New("unauthorized access to order")
	ErrEmptyOrder              = errors.New("order has no items")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrShippingAddressNotOwned = errors.New("shipping address does not belong to the user")
)

// validTransitions encodes the order lifecycle. Completed and canceled are
// terminal.
var validTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusPaid, model.OrderStatusCanceled},
	model.OrderStatusPaid:      {model.OrderStatusShipping, model.OrderStatusCanceled},
	model.OrderStatusShipping:  {model.OrderStatusDelivered, model.OrderStatusCanceled},
	model.OrderStatusDelivered: {model.OrderStatusCompleted},
	model.OrderStatusCompleted: {},
	model.OrderStatusCanceled:  {},
}

func canTransition(from, to model.OrderStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderLine is a requested product and quantity at checkout.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

type OrderService interface {
	CreateOrder(userID uint, lines []OrderLine, shippingAddressID *uint) (*model.Order, error)
	CreateOrderFromCart(userID uint, shippingAddressID *uint) (*model.Order, error)
	GetOrder(userID, orderID uint) (*model.Order, error)
	ListOrders(userID uint, limit, offset int) ([]model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) error
	CancelOrder(userID, orderID uint) error
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// effectivePrice is the amount snapshotted into the order item: the discount
// price when one is set, the list price otherwise.
func effectivePrice(product *model.Product) float64 {
	if product.DiscountPrice != nil {
		return *product.DiscountPrice
	}
	return product.Price
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrder validates the requested lines, snapshots unit prices, computes
// the total server-side and decrements stock, all in one transaction.
func (s *orderService) CreateOrder(userID uint, lines []OrderLine, shippingAddressID *uint) (*model.Order, error) {
	logger.Debug("Creating order", map[string]interface{}{
		"user_id":    userID,
		"line_count": len(lines),
	})

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.createOrder(tx, userID, lines, shippingAddressID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

// createOrder runs the per-line validation, price snapshotting and stock
// decrement inside the caller's transaction.
func (s *orderService) createOrder(tx *gorm.DB, userID uint, lines []OrderLine, shippingAddressID *uint) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	if shippingAddressID != nil {
		var address model.UserAddress
		if err := tx.First(&address, *shippingAddressID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAddressNotFound
			}
			return nil, err
		}
		if address.UserID != userID {
			return nil, ErrShippingAddressNotOwned
		}
	}

	order := &model.Order{
		UserID:            userID,
		ShippingAddressID: shippingAddressID,
		OrderNumber:       util.NewOrderNumber(userID, time.Now()),
		Status:            model.OrderStatusPending,
	}

	var total float64
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		var product model.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, ErrProductUnavailable
		}
		if product.Stock < line.Quantity {
			logger.Warn("Order rejected: insufficient stock", map[string]interface{}{
				"product_id": product.ID,
				"stock":      product.Stock,
				"requested":  line.Quantity,
			})
			return nil, ErrInsufficientStock
		}

		unitPrice := effectivePrice(&product)
		order.Items = append(order.Items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
		total += unitPrice * float64(line.Quantity)

		if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).
			Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
			return nil, err
		}
	}

	order.TotalAmount = roundMoney(total)
	if err := tx.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrderFromCart checks out the user's whole cart. The order insert and
// the cart clear commit or roll back as one unit.
func (s *orderService) CreateOrderFromCart(userID uint, shippingAddressID *uint) (*model.Order, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	var order *model.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.createOrder(tx, userID, lines, shippingAddressID)
		if err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cart converted to order", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	return order, nil
}

func (s *orderService) GetOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order access denied: not the owner", map[string]interface{}{
			"order_id": orderID,
			"user_id":  userID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *orderService) ListOrders(userID uint, limit, offset int) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID, limit, offset)
}

// UpdateStatus applies a lifecycle transition. Moves outside the transition
// table are rejected.
func (s *orderService) UpdateStatus(orderID uint, status model.OrderStatus) error {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if !canTransition(order.Status, status) {
		logger.Warn("Order status transition rejected", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return ErrInvalidStatusTransition
	}

	// canceling always goes through the restock path
	if status == model.OrderStatusCanceled {
		return s.cancel(order)
	}

	order.Status = status
	if status == model.OrderStatusPaid {
		order.IsPaid = true
	}
	return s.orderRepo.Update(order)
}

// CancelOrder cancels on behalf of the owner and returns reserved stock for
// orders that never shipped.
func (s *orderService) CancelOrder(userID, orderID uint) error {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return err
	}
	if !canTransition(order.Status, model.OrderStatusCanceled) {
		return ErrInvalidStatusTransition
	}
	return s.cancel(order)
}

// cancel flips the order to canceled and returns reserved stock for orders
// that never shipped, in one transaction.
func (s *orderService) cancel(order *model.Order) error {
	restock := order.Status == model.OrderStatusPending || order.Status == model.OrderStatusPaid

	return s.db.Transaction(func(tx *gorm.DB) error {
		if restock {
			for _, item := range order.Items {
				if err := tx.Model(&model.Product{}).Where("id = ?", item.ProductID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&model.Order{}).Where("id = ?", order.ID).
			Update("status", model.OrderStatusCanceled).Error
	})
}
