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

func setupWishlistServiceTest(t *testing.T) (WishlistService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	wishlistService := NewWishlistService(wishlistRepo, productRepo)

	user := &model.User{Email: "wisher@example.com", PasswordHash: "hash"}
	testDB.Create(user)
	product := &model.Product{
		SKU: "SKU-600", Name: "Wished Product", Price: 35, Stock: 3, IsActive: true, Slug: "wished-product",
	}
	testDB.Create(product)

	return wishlistService, user, product, testDB
}

func TestWishlistService_CreateAndAdd(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	wishlist, err := wishlistService.CreateWishlist(user.ID, "Favorites")
	require.NoError(t, err)

	require.NoError(t, wishlistService.AddProduct(user.ID, wishlist.ID, product.ID))

	reloaded, err := wishlistService.GetWishlist(user.ID, wishlist.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, product.ID, reloaded.Items[0].ProductID)
}

func TestWishlistService_AddProduct_Duplicate(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	wishlist, err := wishlistService.CreateWishlist(user.ID, "Favorites")
	require.NoError(t, err)
	require.NoError(t, wishlistService.AddProduct(user.ID, wishlist.ID, product.ID))

	err = wishlistService.AddProduct(user.ID, wishlist.ID, product.ID)
	assert.ErrorIs(t, err, ErrDuplicateWishlistProduct)
}

func TestWishlistService_AddProduct_ProductNotFound(t *testing.T) {
	wishlistService, user, _, _ := setupWishlistServiceTest(t)

	wishlist, err := wishlistService.CreateWishlist(user.ID, "Favorites")
	require.NoError(t, err)

	err = wishlistService.AddProduct(user.ID, wishlist.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_AccessDenied(t *testing.T) {
	wishlistService, user, product, testDB := setupWishlistServiceTest(t)

	wishlist, err := wishlistService.CreateWishlist(user.ID, "Private")
	require.NoError(t, err)

	intruder := &model.User{Email: "intruder@example.com", PasswordHash: "hash"}
	testDB.Create(intruder)

	_, err = wishlistService.GetWishlist(intruder.ID, wishlist.ID)
	assert.ErrorIs(t, err, ErrWishlistAccessDenied)

	err = wishlistService.AddProduct(intruder.ID, wishlist.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistAccessDenied)

	err = wishlistService.DeleteWishlist(intruder.ID, wishlist.ID)
	assert.ErrorIs(t, err, ErrWishlistAccessDenied)
}

func TestWishlistService_RemoveProduct(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	wishlist, err := wishlistService.CreateWishlist(user.ID, "Favorites")
	require.NoError(t, err)
	require.NoError(t, wishlistService.AddProduct(user.ID, wishlist.ID, product.ID))

	require.NoError(t, wishlistService.RemoveProduct(user.ID, wishlist.ID, product.ID))

	err = wishlistService.RemoveProduct(user.ID, wishlist.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}

func TestWishlistService_DeleteWishlist_RemovesItems(t *testing.T) {
	wishlistService, user, product, testDB := setupWishlistServiceTest(t)

	wishlist, err := wishlistService.CreateWishlist(user.ID, "Doomed")
	require.NoError(t, err)
	require.NoError(t, wishlistService.AddProduct(user.ID, wishlist.ID, product.ID))

	require.NoError(t, wishlistService.DeleteWishlist(user.ID, wishlist.ID))

	var items int64
	testDB.Model(&model.WishlistItem{}).Where("wishlist_id = ?", wishlist.ID).Count(&items)
	assert.Equal(t, int64(0), items)

	_, err = wishlistService.GetWishlist(user.ID, wishlist.ID)
	assert.ErrorIs(t, err, ErrWishlistNotFound)
}

func TestWishlistService_RenameWishlist(t *testing.T) {
	wishlistService, user, _, _ := setupWishlistServiceTest(t)

	wishlist, err := wishlistService.CreateWishlist(user.ID, "Old Name")
	require.NoError(t, err)

	require.NoError(t, wishlistService.RenameWishlist(user.ID, wishlist.ID, "New Name"))

	reloaded, err := wishlistService.GetWishlist(user.ID, wishlist.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.Name)
}
