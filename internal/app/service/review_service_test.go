package service

import (
	"testing"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (ReviewService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	reviewService := NewReviewService(reviewRepo, productRepo)

	user := &model.User{Email: "reviewer@example.com", PasswordHash: "hash"}
	testDB.Create(user)
	product := &model.Product{
		SKU: "SKU-400", Name: "Reviewed Product", Price: 40, Stock: 4, IsActive: true, Slug: "reviewed-product",
	}
	testDB.Create(product)

	return reviewService, user, product, testDB
}

func TestReviewService_CreateReview(t *testing.T) {
	reviewService, user, product, _ := setupReviewServiceTest(t)

	review := &model.Review{
		UserID:    user.ID,
		ProductID: product.ID,
		Rating:    4,
		Title:     "Solid",
		Content:   "Does what it says.",
	}
	require.NoError(t, reviewService.CreateReview(review))
	// moderation gate: nothing is public until approved
	assert.False(t, review.IsApproved)
}

func TestReviewService_CreateReview_RatingBounds(t *testing.T) {
	reviewService, user, product, _ := setupReviewServiceTest(t)

	for _, rating := range []int{0, 6, -1} {
		err := reviewService.CreateReview(&model.Review{
			UserID:    user.ID,
			ProductID: product.ID,
			Rating:    rating,
		})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d should be rejected", rating)
	}
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	reviewService, user, product, _ := setupReviewServiceTest(t)

	require.NoError(t, reviewService.CreateReview(&model.Review{
		UserID: user.ID, ProductID: product.ID, Rating: 5,
	}))

	err := reviewService.CreateReview(&model.Review{
		UserID: user.ID, ProductID: product.ID, Rating: 2,
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestReviewService_CreateReview_ProductNotFound(t *testing.T) {
	reviewService, user, _, _ := setupReviewServiceTest(t)

	err := reviewService.CreateReview(&model.Review{
		UserID: user.ID, ProductID: 9999, Rating: 3,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReviewService_ApproveAndList(t *testing.T) {
	reviewService, user, product, testDB := setupReviewServiceTest(t)

	review := &model.Review{UserID: user.ID, ProductID: product.ID, Rating: 5}
	require.NoError(t, reviewService.CreateReview(review))

	second := &model.User{Email: "second@example.com", PasswordHash: "hash"}
	testDB.Create(second)
	unapproved := &model.Review{UserID: second.ID, ProductID: product.ID, Rating: 1}
	require.NoError(t, reviewService.CreateReview(unapproved))

	require.NoError(t, reviewService.ApproveReview(review.ID))

	listed, err := reviewService.ListApprovedByProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, review.ID, listed[0].ID)
}

func TestReviewService_UpdateReview_OwnershipAndModeration(t *testing.T) {
	reviewService, user, product, testDB := setupReviewServiceTest(t)

	review := &model.Review{UserID: user.ID, ProductID: product.ID, Rating: 3}
	require.NoError(t, reviewService.CreateReview(review))
	require.NoError(t, reviewService.ApproveReview(review.ID))

	intruder := &model.User{Email: "intruder@example.com", PasswordHash: "hash"}
	testDB.Create(intruder)
	err := reviewService.UpdateReview(intruder.ID, &model.Review{ID: review.ID, Rating: 1})
	assert.ErrorIs(t, err, ErrReviewAccessDenied)

	require.NoError(t, reviewService.UpdateReview(user.ID, &model.Review{
		ID: review.ID, Rating: 4, Title: "Updated",
	}))

	var reloaded model.Review
	require.NoError(t, testDB.First(&reloaded, review.ID).Error)
	assert.Equal(t, 4, reloaded.Rating)
	// edits drop back out of the approved pool
	assert.False(t, reloaded.IsApproved)
}

func TestReviewService_ProductRatingSummary(t *testing.T) {
	reviewService, user, product, testDB := setupReviewServiceTest(t)

	first := &model.Review{UserID: user.ID, ProductID: product.ID, Rating: 5}
	require.NoError(t, reviewService.CreateReview(first))
	require.NoError(t, reviewService.ApproveReview(first.ID))

	second := &model.User{Email: "rater@example.com", PasswordHash: "hash"}
	testDB.Create(second)
	secondReview := &model.Review{UserID: second.ID, ProductID: product.ID, Rating: 3}
	require.NoError(t, reviewService.CreateReview(secondReview))
	require.NoError(t, reviewService.ApproveReview(secondReview.ID))

	// a third, unapproved review must not move the average
	third := &model.User{Email: "silent@example.com", PasswordHash: "hash"}
	testDB.Create(third)
	require.NoError(t, reviewService.CreateReview(&model.Review{
		UserID: third.ID, ProductID: product.ID, Rating: 1,
	}))

	summary, err := reviewService.ProductRatingSummary(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ReviewCount)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.001)
}

func TestReviewService_DeleteReview(t *testing.T) {
	reviewService, user, product, _ := setupReviewServiceTest(t)

	review := &model.Review{UserID: user.ID, ProductID: product.ID, Rating: 2}
	require.NoError(t, reviewService.CreateReview(review))

	require.NoError(t, reviewService.DeleteReview(user.ID, review.ID))

	err := reviewService.DeleteReview(user.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
