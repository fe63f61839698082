package seed

import (
	"testing"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Run(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	seeder := New(testDB, Options{
		Users:      20,
		Categories: 6,
		Products:   30,
		Orders:     40,
		BatchSize:  10,
		RandomSeed: 1,
	})

	result, err := seeder.Run()
	require.NoError(t, err)

	assert.Equal(t, 20, result.Users)
	assert.Equal(t, 6, result.Categories)
	assert.Equal(t, 30, result.Products)
	assert.Equal(t, 40, result.Orders)
	assert.Greater(t, result.Addresses, 0)
	assert.Greater(t, result.OrderItems, 0)
	assert.Greater(t, result.CategoryLinks, 0)
	assert.Greater(t, result.Reviews, 0)

	var users, products, orders int64
	testDB.Model(&model.User{}).Count(&users)
	testDB.Model(&model.Product{}).Count(&products)
	testDB.Model(&model.Order{}).Count(&orders)
	assert.Equal(t, int64(20), users)
	assert.Equal(t, int64(30), products)
	assert.Equal(t, int64(40), orders)
}

func TestSeeder_Run_OrderTotalsMatchItems(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	seeder := New(testDB, Options{
		Users:      10,
		Categories: 4,
		Products:   15,
		Orders:     25,
		BatchSize:  500,
		RandomSeed: 42,
	})
	_, err = seeder.Run()
	require.NoError(t, err)

	// every generated total must equal the sum over its own items
	type totalRow struct {
		ID          uint
		TotalAmount float64
		ItemSum     float64
	}
	var rows []totalRow
	require.NoError(t, testDB.Raw(`
		SELECT o.id, o.total_amount,
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS item_sum
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY o.id, o.total_amount`).Scan(&rows).Error)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		assert.InDelta(t, row.ItemSum, row.TotalAmount, 0.01, "order %d", row.ID)
	}
}

func TestSeeder_Run_ConstraintsHold(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	seeder := New(testDB, Options{
		Users:      15,
		Categories: 5,
		Products:   20,
		Orders:     30,
		BatchSize:  500,
		RandomSeed: 7,
	})
	_, err = seeder.Run()
	require.NoError(t, err)

	// no duplicate (user, product) cart rows
	var dupCarts int64
	require.NoError(t, testDB.Raw(`
		SELECT COUNT(*) FROM (
			SELECT user_id, product_id FROM shopping_cart
			GROUP BY user_id, product_id HAVING COUNT(*) > 1
		)`).Scan(&dupCarts).Error)
	assert.Equal(t, int64(0), dupCarts)

	// no duplicate (user, product) reviews
	var dupReviews int64
	require.NoError(t, testDB.Raw(`
		SELECT COUNT(*) FROM (
			SELECT user_id, product_id FROM reviews
			GROUP BY user_id, product_id HAVING COUNT(*) > 1
		)`).Scan(&dupReviews).Error)
	assert.Equal(t, int64(0), dupReviews)

	// ratings stay in bounds
	var badRatings int64
	require.NoError(t, testDB.Model(&model.Review{}).
		Where("rating < 1 OR rating > 5").Count(&badRatings).Error)
	assert.Equal(t, int64(0), badRatings)

	// every payment belongs to a paid order
	var orphanPayments int64
	require.NoError(t, testDB.Raw(`
		SELECT COUNT(*) FROM payments p
		LEFT JOIN orders o ON o.id = p.order_id
		WHERE o.id IS NULL`).Scan(&orphanPayments).Error)
	assert.Equal(t, int64(0), orphanPayments)
}

func TestSeeder_Deterministic(t *testing.T) {
	run := func() []string {
		testDB, err := db.SetupTestDB()
		require.NoError(t, err)
		t.Cleanup(func() {
			db.CleanupTestDB(testDB)
		})

		seeder := New(testDB, Options{
			Users: 5, Categories: 3, Products: 8, Orders: 6,
			BatchSize: 500, RandomSeed: 99,
		})
		_, err = seeder.Run()
		require.NoError(t, err)

		var emails []string
		require.NoError(t, testDB.Model(&model.User{}).
			Order("id ASC").Pluck("email", &emails).Error)
		return emails
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}
