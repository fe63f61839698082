package repository

import (
	"time"

	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

// Report row types. Field order mirrors the SELECT lists below.

type ProductOrderCount struct {
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	OrderCount int64   `json:"order_count"`
	UnitsSold  int64   `json:"units_sold"`
	Revenue    float64 `json:"revenue"`
}

type CategoryPriceStats struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	ProductCount int64   `json:"product_count"`
	AvgPrice     float64 `json:"avg_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

type UserOrderTotal struct {
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	ItemCount   int64     `json:"item_count"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserSpending struct {
	UserID     uint    `json:"user_id"`
	Email      string  `json:"email"`
	OrderCount int64   `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

type ProductAboveAverage struct {
	ProductID    uint    `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	CategoryAvg  float64 `json:"category_avg"`
}

type CategoryOrderValue struct {
	CategoryID    uint    `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	OrderCount    int64   `json:"order_count"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type OrderAboveMedian struct {
	OrderID     uint    `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	UserID      uint    `json:"user_id"`
	Total       float64 `json:"total"`
	MedianTotal float64 `json:"median_total"`
}

type RankedProduct struct {
	ProductID  uint   `json:"product_id"`
	Name       string `json:"name"`
	OrderCount int64  `json:"order_count"`
	Rank       int64  `json:"rank"`
}

type CategoryTopProduct struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	UnitsSold    int64   `json:"units_sold"`
	RowNumber    int64   `json:"row_number"`
}

type RepeatPurchase struct {
	UserID     uint   `json:"user_id"`
	Email      string `json:"email"`
	ProductID  uint   `json:"product_id"`
	Product    string `json:"product"`
	OrderCount int64  `json:"order_count"`
}

// ReportRepository runs the read-only analytics queries. Results come from
// raw SQL over the live schema; nothing here mutates state.
type ReportRepository interface {
	TopProductsByOrders(limit int) ([]ProductOrderCount, error)
	AveragePriceByCategory() ([]CategoryPriceStats, error)
	OrderTotalsForUser(userID uint) ([]UserOrderTotal, error)
	TopSpendingUsers(limit int) ([]UserSpending, error)
	TopSellingProducts(limit int) ([]ProductOrderCount, error)
	ProductsAboveCategoryAverage() ([]ProductAboveAverage, error)
	CategoriesByAverageOrderValue() ([]CategoryOrderValue, error)
	OrdersAboveMedianTotal() ([]OrderAboveMedian, error)
	RankProductsByOrderCount(limit int) ([]RankedProduct, error)
	TopProductsPerCategory(perCategory int) ([]CategoryTopProduct, error)
	RepeatPurchases(minOrders int) ([]RepeatPurchase, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) TopProductsByOrders(limit int) ([]ProductOrderCount, error) {
	logger.Debug("Running top products by orders report", map[string]interface{}{
		"limit": limit,
	})

	var rows []ProductOrderCount
	err := r.db.Raw(`
		SELECT p.id AS product_id,
		       p.name,
		       p.sku,
		       COUNT(DISTINCT oi.order_id) AS order_count,
		       COALESCE(SUM(oi.quantity), 0) AS units_sold,
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue
		FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id, p.name, p.sku
		ORDER BY order_count DESC, p.id ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run top products by orders report", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) AveragePriceByCategory() ([]CategoryPriceStats, error) {
	var rows []CategoryPriceStats
	err := r.db.Raw(`
		SELECT c.id AS category_id,
		       c.name AS category_name,
		       COUNT(p.id) AS product_count,
		       COALESCE(AVG(p.price), 0) AS avg_price,
		       COALESCE(MIN(p.price), 0) AS min_price,
		       COALESCE(MAX(p.price), 0) AS max_price
		FROM categories c
		LEFT JOIN products_categories pc ON pc.category_id = c.id
		LEFT JOIN products p ON p.id = pc.product_id
		GROUP BY c.id, c.name
		ORDER BY c.name ASC`).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run average price by category report", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) OrderTotalsForUser(userID uint) ([]UserOrderTotal, error) {
	logger.Debug("Running order totals report for user", map[string]interface{}{
		"user_id": userID,
	})

	var rows []UserOrderTotal
	err := r.db.Raw(`
		SELECT o.id AS order_id,
		       o.order_number,
		       o.status,
		       COUNT(oi.id) AS item_count,
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total,
		       o.created_at
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = ?
		GROUP BY o.id, o.order_number, o.status, o.created_at
		ORDER BY o.created_at DESC`, userID).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run order totals report for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) TopSpendingUsers(limit int) ([]UserSpending, error) {
	var rows []UserSpending
	err := r.db.Raw(`
		SELECT u.id AS user_id,
		       u.email,
		       COUNT(DISTINCT o.id) AS order_count,
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_spent
		FROM users u
		JOIN orders o ON o.user_id = u.id
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.status NOT IN ('canceled')
		GROUP BY u.id, u.email
		ORDER BY total_spent DESC, u.id ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run top spending users report", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) TopSellingProducts(limit int) ([]ProductOrderCount, error) {
	var rows []ProductOrderCount
	err := r.db.Raw(`
		SELECT p.id AS product_id,
		       p.name,
		       p.sku,
		       COUNT(DISTINCT oi.order_id) AS order_count,
		       COALESCE(SUM(oi.quantity), 0) AS units_sold,
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue
		FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id, p.name, p.sku
		ORDER BY units_sold DESC, p.id ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run top selling products report", err, nil)
		return nil, err
	}
	return rows, nil
}

// ProductsAboveCategoryAverage compares each product against the average
// price of its own category via a correlated subquery.
func (r *reportRepository) ProductsAboveCategoryAverage() ([]ProductAboveAverage, error) {
	var rows []ProductAboveAverage
	err := r.db.Raw(`
		SELECT p.id AS product_id,
		       p.name,
		       p.price,
		       c.id AS category_id,
		       c.name AS category_name,
		       (SELECT AVG(p2.price)
		        FROM products p2
		        JOIN products_categories pc2 ON pc2.product_id = p2.id
		        WHERE pc2.category_id = c.id) AS category_avg
		FROM products p
		JOIN products_categories pc ON pc.product_id = p.id
		JOIN categories c ON c.id = pc.category_id
		WHERE p.price > (SELECT AVG(p2.price)
		                 FROM products p2
		                 JOIN products_categories pc2 ON pc2.product_id = p2.id
		                 WHERE pc2.category_id = c.id)
		ORDER BY c.name ASC, p.price DESC`).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run products above category average report", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) CategoriesByAverageOrderValue() ([]CategoryOrderValue, error) {
	var rows []CategoryOrderValue
	err := r.db.Raw(`
		WITH order_values AS (
			SELECT pc.category_id,
			       oi.order_id,
			       SUM(oi.quantity * oi.unit_price) AS order_value
			FROM order_items oi
			JOIN products_categories pc ON pc.product_id = oi.product_id
			GROUP BY pc.category_id, oi.order_id
		)
		SELECT c.id AS category_id,
		       c.name AS category_name,
		       COUNT(ov.order_id) AS order_count,
		       COALESCE(AVG(ov.order_value), 0) AS avg_order_value
		FROM categories c
		LEFT JOIN order_values ov ON ov.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY avg_order_value DESC, c.name ASC`).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run categories by average order value report", err, nil)
		return nil, err
	}
	return rows, nil
}

// OrdersAboveMedianTotal uses PERCENTILE_CONT and runs on PostgreSQL only.
func (r *reportRepository) OrdersAboveMedianTotal() ([]OrderAboveMedian, error) {
	var rows []OrderAboveMedian
	err := r.db.Raw(`
		WITH order_totals AS (
			SELECT o.id, o.order_number, o.user_id,
			       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total
			FROM orders o
			LEFT JOIN order_items oi ON oi.order_id = o.id
			GROUP BY o.id, o.order_number, o.user_id
		),
		med AS (
			SELECT PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY total) AS median_total
			FROM order_totals
		)
		SELECT ot.id AS order_id,
		       ot.order_number,
		       ot.user_id,
		       ot.total,
		       med.median_total
		FROM order_totals ot, med
		WHERE ot.total > med.median_total
		ORDER BY ot.total DESC`).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run orders above median total report", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) RankProductsByOrderCount(limit int) ([]RankedProduct, error) {
	var rows []RankedProduct
	err := r.db.Raw(`
		SELECT p.id AS product_id,
		       p.name,
		       COUNT(DISTINCT oi.order_id) AS order_count,
		       RANK() OVER (ORDER BY COUNT(DISTINCT oi.order_id) DESC) AS rank
		FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY rank ASC, p.id ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run ranked products report", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) TopProductsPerCategory(perCategory int) ([]CategoryTopProduct, error) {
	var rows []CategoryTopProduct
	err := r.db.Raw(`
		WITH category_sales AS (
			SELECT c.id AS category_id,
			       c.name AS category_name,
			       p.id AS product_id,
			       p.name AS product_name,
			       COALESCE(SUM(oi.quantity), 0) AS units_sold,
			       ROW_NUMBER() OVER (
			           PARTITION BY c.id
			           ORDER BY COALESCE(SUM(oi.quantity), 0) DESC, p.id ASC
			       ) AS row_number
			FROM categories c
			JOIN products_categories pc ON pc.category_id = c.id
			JOIN products p ON p.id = pc.product_id
			LEFT JOIN order_items oi ON oi.product_id = p.id
			GROUP BY c.id, c.name, p.id, p.name
		)
		SELECT category_id, category_name, product_id, product_name, units_sold, row_number
		FROM category_sales
		WHERE row_number <= ?
		ORDER BY category_name ASC, row_number ASC`, perCategory).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run top products per category report", err, nil)
		return nil, err
	}
	return rows, nil
}

// RepeatPurchases lists user and product pairs bought in at least minOrders
// distinct orders.
func (r *reportRepository) RepeatPurchases(minOrders int) ([]RepeatPurchase, error) {
	if minOrders < 2 {
		minOrders = 2
	}

	var rows []RepeatPurchase
	err := r.db.Raw(`
		SELECT u.id AS user_id,
		       u.email,
		       p.id AS product_id,
		       p.name AS product,
		       COUNT(DISTINCT o.id) AS order_count
		FROM users u
		JOIN orders o ON o.user_id = u.id
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		GROUP BY u.id, u.email, p.id, p.name
		HAVING COUNT(DISTINCT o.id) >= ?
		ORDER BY order_count DESC, u.id ASC, p.id ASC`, minOrders).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to run repeat purchases report", err, nil)
		return nil, err
	}
	return rows, nil
}
