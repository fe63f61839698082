package service

import (
	"errors"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrWishlistNotFound         = errors.New("wishlist not found")
	ErrWishlistAccessDenied     = errors.New("unauthorized access to wishlist")
	ErrWishlistItemNotFound     = errors.New("wishlist item not found")
	ErrDuplicateWishlistProduct = errors.New("product is already in the wishlist")
)

type WishlistService interface {
	CreateWishlist(userID uint, name string) (*model.Wishlist, error)
	RenameWishlist(userID, wishlistID uint, name string) error
	DeleteWishlist(userID, wishlistID uint) error
	GetWishlist(userID, wishlistID uint) (*model.Wishlist, error)
	ListWishlists(userID uint) ([]model.Wishlist, error)
	AddProduct(userID, wishlistID, productID uint) error
	RemoveProduct(userID, wishlistID, productID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) CreateWishlist(userID uint, name string) (*model.Wishlist, error) {
	logger.Debug("Creating wishlist", map[string]interface{}{
		"user_id": userID,
		"name":    name,
	})

	wishlist := &model.Wishlist{
		UserID: userID,
		Name:   name,
	}
	if err := s.wishlistRepo.Create(wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (s *wishlistService) RenameWishlist(userID, wishlistID uint, name string) error {
	wishlist, err := s.ownedWishlist(userID, wishlistID)
	if err != nil {
		return err
	}
	wishlist.Name = name
	return s.wishlistRepo.Update(wishlist)
}

func (s *wishlistService) DeleteWishlist(userID, wishlistID uint) error {
	if _, err := s.ownedWishlist(userID, wishlistID); err != nil {
		return err
	}
	return s.wishlistRepo.Delete(wishlistID)
}

func (s *wishlistService) GetWishlist(userID, wishlistID uint) (*model.Wishlist, error) {
	return s.ownedWishlist(userID, wishlistID)
}

func (s *wishlistService) ListWishlists(userID uint) ([]model.Wishlist, error) {
	return s.wishlistRepo.FindByUserID(userID)
}

// AddProduct saves a product into the wishlist once; a second add of the
// same product is rejected, not ignored.
func (s *wishlistService) AddProduct(userID, wishlistID, productID uint) error {
	if _, err := s.ownedWishlist(userID, wishlistID); err != nil {
		return err
	}
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	_, err := s.wishlistRepo.FindItem(wishlistID, productID)
	if err == nil {
		logger.Debug("Wishlist add rejected: duplicate product", map[string]interface{}{
			"wishlist_id": wishlistID,
			"product_id":  productID,
		})
		return ErrDuplicateWishlistProduct
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.wishlistRepo.AddItem(&model.WishlistItem{
		WishlistID: wishlistID,
		ProductID:  productID,
	})
}

func (s *wishlistService) RemoveProduct(userID, wishlistID, productID uint) error {
	if _, err := s.ownedWishlist(userID, wishlistID); err != nil {
		return err
	}
	if _, err := s.wishlistRepo.FindItem(wishlistID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return err
	}
	return s.wishlistRepo.DeleteItem(wishlistID, productID)
}

func (s *wishlistService) ownedWishlist(userID, wishlistID uint) (*model.Wishlist, error) {
	wishlist, err := s.wishlistRepo.FindByID(wishlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}
	if wishlist.UserID != userID {
		logger.Warn("Wishlist access denied: not the owner", map[string]interface{}{
			"wishlist_id": wishlistID,
			"user_id":     userID,
			"owner_id":    wishlist.UserID,
		})
		return nil, ErrWishlistAccessDenied
	}
	return wishlist, nil
}
