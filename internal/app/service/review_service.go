package service

import (
	"errors"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewAccessDenied = errors.New("unauthorized access to review")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview    = errors.New("user already reviewed this product")
)

type RatingSummary struct {
	ProductID     uint    `json:"product_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type ReviewService interface {
	CreateReview(review *model.Review) error
	UpdateReview(userID uint, review *model.Review) error
	ApproveReview(reviewID uint) error
	DeleteReview(userID, reviewID uint) error
	ListApprovedByProduct(productID uint) ([]model.Review, error)
	ListByUser(userID uint) ([]model.Review, error)
	ProductRatingSummary(productID uint) (*RatingSummary, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// CreateReview accepts one review per user and product, rating 1 to 5. New
// reviews start unapproved.
func (s *reviewService) CreateReview(review *model.Review) error {
	logger.Debug("Creating review", map[string]interface{}{
		"user_id":    review.UserID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})

	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(review.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	_, err := s.reviewRepo.FindByUserAndProduct(review.UserID, review.ProductID)
	if err == nil {
		logger.Debug("Review rejected: duplicate", map[string]interface{}{
			"user_id":    review.UserID,
			"product_id": review.ProductID,
		})
		return ErrDuplicateReview
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	review.IsApproved = false
	return s.reviewRepo.Create(review)
}

func (s *reviewService) UpdateReview(userID uint, review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	existing, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if existing.UserID != userID {
		logger.Warn("Review update denied: not the owner", map[string]interface{}{
			"review_id": review.ID,
			"user_id":   userID,
			"owner_id":  existing.UserID,
		})
		return ErrReviewAccessDenied
	}

	existing.Rating = review.Rating
	existing.Title = review.Title
	existing.Content = review.Content
	// edits go back through moderation
	existing.IsApproved = false
	return s.reviewRepo.Update(existing)
}

func (s *reviewService) ApproveReview(reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	review.IsApproved = true

	logger.Info("Review approved", map[string]interface{}{
		"review_id":  reviewID,
		"product_id": review.ProductID,
	})
	return s.reviewRepo.Update(review)
}

func (s *reviewService) DeleteReview(userID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrReviewAccessDenied
	}
	return s.reviewRepo.Delete(reviewID)
}

func (s *reviewService) ListApprovedByProduct(productID uint) ([]model.Review, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.reviewRepo.FindApprovedByProduct(productID)
}

func (s *reviewService) ListByUser(userID uint) ([]model.Review, error) {
	return s.reviewRepo.FindByUserID(userID)
}

func (s *reviewService) ProductRatingSummary(productID uint) (*RatingSummary, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	avg, count, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, err
	}
	return &RatingSummary{
		ProductID:     productID,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}
