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

func setupOrderServiceTest(t *testing.T) (OrderService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderService := NewOrderService(testDB, orderRepo, cartRepo)

	user := &model.User{
		Email:        "a@x.com",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	product := &model.Product{
		SKU:      "SKU-001",
		Name:     "Test Product",
		Price:    100.00,
		Stock:    10,
		IsActive: true,
		Slug:     "test-product",
	}
	testDB.Create(product)

	return orderService, user, product, testDB
}

func TestOrderService_CreateOrder_TotalFromItems(t *testing.T) {
	orderService, user, product, _ := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 2},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 200.00, order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100.00, order.Items[0].UnitPrice)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderService_CreateOrder_SnapshotsDiscountPrice(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	discount := 80.00
	product.DiscountPrice = &discount
	require.NoError(t, testDB.Save(product).Error)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 3},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 240.00, order.TotalAmount)
	assert.Equal(t, 80.00, order.Items[0].UnitPrice)
}

func TestOrderService_CreateOrder_DecrementsStock(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	_, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 4},
	}, nil)
	require.NoError(t, err)

	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 6, reloaded.Stock)
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	_, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 11},
	}, nil)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// a rejected order leaves stock untouched
	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 10, reloaded.Stock)
}

func TestOrderService_CreateOrder_EmptyOrder(t *testing.T) {
	orderService, user, _, _ := setupOrderServiceTest(t)

	_, err := orderService.CreateOrder(user.ID, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrderService_CreateOrder_InactiveProduct(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	product.IsActive = false
	require.NoError(t, testDB.Save(product).Error)

	_, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	}, nil)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestOrderService_CreateOrder_ShippingAddressOwnership(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	other := &model.User{Email: "b@x.com", PasswordHash: "hash"}
	testDB.Create(other)
	address := &model.UserAddress{
		UserID:     other.ID,
		Line1:      "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
	testDB.Create(address)

	_, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	}, &address.ID)
	assert.ErrorIs(t, err, ErrShippingAddressNotOwned)
}

func TestOrderService_CreateOrderFromCart(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	second := &model.Product{
		SKU:      "SKU-002",
		Name:     "Second Product",
		Price:    50.00,
		Stock:    5,
		IsActive: true,
		Slug:     "second-product",
	}
	testDB.Create(second)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: second.ID, Quantity: 1})

	order, err := orderService.CreateOrderFromCart(user.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 250.00, order.TotalAmount)
	assert.Len(t, order.Items, 2)

	// checkout empties the cart
	var remaining int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining)
	assert.Equal(t, int64(0), remaining)
}

func TestOrderService_CreateOrderFromCart_Empty(t *testing.T) {
	orderService, user, _, _ := setupOrderServiceTest(t)

	_, err := orderService.CreateOrderFromCart(user.ID, nil)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestOrderService_UpdateStatus_ValidTransitions(t *testing.T) {
	orderService, user, product, _ := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusPaid))
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusShipping))
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusDelivered))
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusCompleted))

	updated, err := orderService.GetOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, updated.Status)
	assert.True(t, updated.IsPaid)
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	orderService, user, product, _ := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	}, nil)
	require.NoError(t, err)

	// pending cannot jump straight to shipping
	err = orderService.UpdateStatus(order.ID, model.OrderStatusShipping)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	// completed is terminal
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusPaid))
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusShipping))
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusDelivered))
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusCompleted))
	err = orderService.UpdateStatus(order.ID, model.OrderStatusCanceled)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestOrderService_CancelOrder_RestoresStock(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 3},
	}, nil)
	require.NoError(t, err)

	var afterOrder model.Product
	require.NoError(t, testDB.First(&afterOrder, product.ID).Error)
	require.Equal(t, 7, afterOrder.Stock)

	require.NoError(t, orderService.CancelOrder(user.ID, order.ID))

	var afterCancel model.Product
	require.NoError(t, testDB.First(&afterCancel, product.ID).Error)
	assert.Equal(t, 10, afterCancel.Stock)

	canceled, err := orderService.GetOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCanceled, canceled.Status)
}

func TestOrderService_UpdateStatus_CancelRestoresStock(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 3},
	}, nil)
	require.NoError(t, err)

	var afterOrder model.Product
	require.NoError(t, testDB.First(&afterOrder, product.ID).Error)
	require.Equal(t, 7, afterOrder.Stock)

	// canceling through the transition path restocks just like CancelOrder
	require.NoError(t, orderService.UpdateStatus(order.ID, model.OrderStatusCanceled))

	var afterCancel model.Product
	require.NoError(t, testDB.First(&afterCancel, product.ID).Error)
	assert.Equal(t, 10, afterCancel.Stock)

	canceled, err := orderService.GetOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCanceled, canceled.Status)
}

func TestOrderService_CreateOrderFromCart_RollsBackAsOneUnit(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	inactive := &model.Product{
		SKU:      "SKU-003",
		Name:     "Retired Product",
		Price:    40.00,
		Stock:    5,
		IsActive: false,
		Slug:     "retired-product",
	}
	testDB.Create(inactive)

	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	testDB.Create(&model.CartItem{UserID: user.ID, ProductID: inactive.ID, Quantity: 1})

	_, err := orderService.CreateOrderFromCart(user.ID, nil)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	// the failed checkout leaves no order behind and keeps the cart whole
	var orders int64
	testDB.Model(&model.Order{}).Where("user_id = ?", user.ID).Count(&orders)
	assert.Equal(t, int64(0), orders)

	var cartRows int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&cartRows)
	assert.Equal(t, int64(2), cartRows)

	// the first line's stock decrement rolled back with the rest
	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Equal(t, 10, reloaded.Stock)
}

func TestOrderService_GetOrder_AccessDenied(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	}, nil)
	require.NoError(t, err)

	other := &model.User{Email: "intruder@x.com", PasswordHash: "hash"}
	testDB.Create(other)

	_, err = orderService.GetOrder(other.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderAccessDenied)
}

func TestOrderService_OrderDelete_CascadesItemsAndPayments(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	order, err := orderService.CreateOrder(user.ID, []OrderLine{
		{ProductID: product.ID, Quantity: 1},
	}, nil)
	require.NoError(t, err)

	transactionID := "txn-delete-test"
	testDB.Create(&model.Payment{
		OrderID:       order.ID,
		UserID:        user.ID,
		PaymentMethod: "credit_card",
		Amount:        order.TotalAmount,
		Status:        model.PaymentStatusCompleted,
		TransactionID: &transactionID,
	})

	orderRepo := repository.NewOrderRepository(testDB)
	require.NoError(t, orderRepo.Delete(order.ID))

	var items, payments int64
	testDB.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	testDB.Model(&model.Payment{}).Where("order_id = ?", order.ID).Count(&payments)
	assert.Equal(t, int64(0), items)
	assert.Equal(t, int64(0), payments)
}
