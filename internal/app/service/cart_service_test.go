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

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "cart@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	product := &model.Product{
		SKU:      "SKU-100",
		Name:     "Cart Product",
		Price:    25.00,
		Stock:    20,
		IsActive: true,
		Slug:     "cart-product",
	}
	testDB.Create(product)

	return cartService, user, product, testDB
}

func TestCartService_AddToCart_Success(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	items, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_AddToCart_IncrementsExistingRow(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	// one row, quantity accumulated
	var count int64
	testDB.Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", user.ID, product.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)

	items, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_InactiveProduct(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	product.IsActive = false
	require.NoError(t, testDB.Save(product).Error)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cartService.UpdateQuantity(user.ID, item.ID, 5))

	items, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartService_UpdateQuantity_AccessDenied(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash"}
	testDB.Create(other)

	err = cartService.UpdateQuantity(other.ID, item.ID, 2)
	assert.ErrorIs(t, err, ErrCartAccessDenied)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cartService.RemoveFromCart(user.ID, item.ID))

	items, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	second := &model.Product{
		SKU:      "SKU-101",
		Name:     "Another Product",
		Price:    10.00,
		Stock:    5,
		IsActive: true,
		Slug:     "another-product",
	}
	testDB.Create(second)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, second.ID, 2)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(user.ID))

	items, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}
