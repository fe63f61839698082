package service

import (
	"errors"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrCartAccessDenied   = errors.New("unauthorized access to cart item")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrProductUnavailable = errors.New("product is not available")
)

type CartService interface {
	AddToCart(userID, productID uint, quantity int) (*model.CartItem, error)
	UpdateQuantity(userID, cartItemID uint, quantity int) error
	RemoveFromCart(userID, cartItemID uint) error
	GetCart(userID uint) ([]model.CartItem, error)
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart adds a product to the user's cart. Adding a product that is
// already in the cart increments the existing row instead of inserting a
// second one.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.CartItem, error) {
	logger.Debug("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) UpdateQuantity(userID, cartItemID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		logger.Warn("Cart update denied: not the owner", map[string]interface{}{
			"cart_item_id": cartItemID,
			"user_id":      userID,
			"owner_id":     item.UserID,
		})
		return ErrCartAccessDenied
	}

	item.Quantity = quantity
	return s.cartRepo.Update(item)
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrCartAccessDenied
	}
	return s.cartRepo.Delete(cartItemID)
}

func (s *cartService) GetCart(userID uint) ([]model.CartItem, error) {
	return s.cartRepo.FindByUserID(userID)
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.DeleteByUserID(userID)
}
