package seed

import (
	"fmt"
	"math"
	"time"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/util"
	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"
)

// Options sizes a seeding run. Zero values fall back to the defaults below.
type Options struct {
	Users            int
	Categories       int
	Products         int
	Orders           int
	MaxItemsPerOrder int
	BatchSize        int
	RandomSeed       uint64
}

const (
	defaultUsers            = 200
	defaultCategories       = 12
	defaultProducts         = 500
	defaultOrders           = 1000
	defaultMaxItemsPerOrder = 5
	defaultBatchSize        = 500
)

// Result counts the rows each stage committed. On failure it reports
// everything that made it in before the run aborted.
type Result struct {
	Users         int
	Addresses     int
	Categories    int
	Products      int
	CategoryLinks int
	CartItems     int
	Wishlists     int
	WishlistItems int
	Orders        int
	OrderItems    int
	Payments      int
	Reviews       int
}

type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	opts  Options
}

func New(db *gorm.DB, opts Options) *Seeder {
	if opts.Users <= 0 {
		opts.Users = defaultUsers
	}
	if opts.Categories <= 0 {
		opts.Categories = defaultCategories
	}
	if opts.Products <= 0 {
		opts.Products = defaultProducts
	}
	if opts.Orders <= 0 {
		opts.Orders = defaultOrders
	}
	if opts.MaxItemsPerOrder <= 0 {
		opts.MaxItemsPerOrder = defaultMaxItemsPerOrder
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	return &Seeder{
		db:    db,
		faker: gofakeit.New(opts.RandomSeed),
		opts:  opts,
	}
}

// Run fills the database stage by stage: users and addresses, the category
// tree, products with category links, carts, wishlists, orders with items
// and payments, reviews. A stage failure aborts the run; the returned Result
// still reports every stage that committed.
func (s *Seeder) Run() (*Result, error) {
	result := &Result{}
	start := time.Now()

	logger.Info("Seeding started", map[string]interface{}{
		"users":      s.opts.Users,
		"categories": s.opts.Categories,
		"products":   s.opts.Products,
		"orders":     s.opts.Orders,
		"batch_size": s.opts.BatchSize,
	})

	users, err := s.seedUsers(result)
	if err != nil {
		return result, fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedAddresses(users, result); err != nil {
		return result, fmt.Errorf("seed addresses: %w", err)
	}
	categories, err := s.seedCategories(result)
	if err != nil {
		return result, fmt.Errorf("seed categories: %w", err)
	}
	products, err := s.seedProducts(result)
	if err != nil {
		return result, fmt.Errorf("seed products: %w", err)
	}
	if err := s.seedCategoryLinks(products, categories, result); err != nil {
		return result, fmt.Errorf("seed category links: %w", err)
	}
	if err := s.seedCarts(users, products, result); err != nil {
		return result, fmt.Errorf("seed carts: %w", err)
	}
	if err := s.seedWishlists(users, products, result); err != nil {
		return result, fmt.Errorf("seed wishlists: %w", err)
	}
	orders, err := s.seedOrders(users, products, result)
	if err != nil {
		return result, fmt.Errorf("seed orders: %w", err)
	}
	if err := s.seedPayments(orders, result); err != nil {
		return result, fmt.Errorf("seed payments: %w", err)
	}
	if err := s.seedReviews(users, products, result); err != nil {
		return result, fmt.Errorf("seed reviews: %w", err)
	}

	logger.Info("Seeding finished", map[string]interface{}{
		"duration": time.Since(start).String(),
		"users":    result.Users,
		"products": result.Products,
		"orders":   result.Orders,
	})
	return result, nil
}

func (s *Seeder) seedUsers(result *Result) ([]model.User, error) {
	// one hash shared across fake users; hashing per row would dominate the run
	hash, err := util.HashPassword("seeded-password")
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		now := time.Now()
		phone := fmt.Sprintf("+1%d%07d", s.faker.Number(200, 999), i)
		user := model.User{
			Email:           fmt.Sprintf("%s.%d@%s", s.faker.Username(), i, s.faker.DomainName()),
			Phone:           &phone,
			PasswordHash:    hash,
			PasswordAlgo:    util.PasswordAlgo,
			PreferredLocale: s.faker.RandomString([]string{"en", "de", "fr", "es", "ru"}),
			Timezone:        s.faker.TimeZoneRegion(),
			DefaultCurrency: s.faker.RandomString([]string{"USD", "EUR", "GBP"}),
			MarketingOptIn:  s.faker.Bool(),
			TermsAcceptedAt: &now,
			Status:          model.UserStatusActive,
		}
		// a small share of banned accounts keeps status queries interesting
		if s.faker.Number(1, 100) <= 3 {
			user.Status = model.UserStatusBanned
		}
		users = append(users, user)
	}

	if err := s.db.CreateInBatches(&users, s.opts.BatchSize).Error; err != nil {
		return nil, err
	}
	result.Users = len(users)
	return users, nil
}

func (s *Seeder) seedAddresses(users []model.User, result *Result) error {
	var addresses []model.UserAddress
	for _, user := range users {
		count := s.faker.Number(1, 3)
		for j := 0; j < count; j++ {
			addr := s.faker.Address()
			state := addr.State
			addresses = append(addresses, model.UserAddress{
				UserID:            user.ID,
				Line1:             addr.Street,
				City:              addr.City,
				State:             &state,
				PostalCode:        addr.Zip,
				Country:           s.faker.CountryAbr(),
				IsDefaultShipping: j == 0,
				IsDefaultBilling:  j == 0,
			})
		}
	}

	if err := s.db.CreateInBatches(&addresses, s.opts.BatchSize).Error; err != nil {
		return err
	}
	result.Addresses = len(addresses)
	return nil
}

func (s *Seeder) seedCategories(result *Result) ([]model.Category, error) {
	roots := s.opts.Categories / 3
	if roots < 1 {
		roots = 1
	}

	categories := make([]model.Category, 0, s.opts.Categories)
	for i := 0; i < roots; i++ {
		name := fmt.Sprintf("%s %d", s.faker.ProductCategory(), i+1)
		categories = append(categories, model.Category{
			Name: name,
			Slug: util.Slugify(name),
		})
	}
	if err := s.db.CreateInBatches(&categories, s.opts.BatchSize).Error; err != nil {
		return nil, err
	}

	// second level hangs off the committed roots
	children := make([]model.Category, 0, s.opts.Categories-roots)
	for i := roots; i < s.opts.Categories; i++ {
		parent := categories[s.faker.Number(0, roots-1)]
		name := fmt.Sprintf("%s %d", s.faker.ProductCategory(), i+1)
		children = append(children, model.Category{
			Name:     name,
			Slug:     util.Slugify(name),
			ParentID: &parent.ID,
		})
	}
	if len(children) > 0 {
		if err := s.db.CreateInBatches(&children, s.opts.BatchSize).Error; err != nil {
			return nil, err
		}
		categories = append(categories, children...)
	}

	result.Categories = len(categories)
	return categories, nil
}

func (s *Seeder) seedProducts(result *Result) ([]model.Product, error) {
	products := make([]model.Product, 0, s.opts.Products)
	for i := 0; i < s.opts.Products; i++ {
		name := s.faker.ProductName()
		price := roundMoney(s.faker.Price(5, 500))
		product := model.Product{
			SKU:         fmt.Sprintf("SKU-%06d", i+1),
			Name:        name,
			Description: s.faker.ProductDescription(),
			Brand:       s.faker.Company(),
			Price:       price,
			Stock:       s.faker.Number(0, 500),
			IsActive:    s.faker.Number(1, 100) <= 90,
			Slug:        fmt.Sprintf("%s-%d", util.Slugify(name), i+1),
		}
		if s.faker.Number(1, 100) <= 25 {
			discount := roundMoney(price * 0.8)
			product.DiscountPrice = &discount
		}
		products = append(products, product)
	}

	if err := s.db.CreateInBatches(&products, s.opts.BatchSize).Error; err != nil {
		return nil, err
	}
	result.Products = len(products)
	return products, nil
}

func (s *Seeder) seedCategoryLinks(products []model.Product, categories []model.Category, result *Result) error {
	var links []model.ProductCategory
	for _, product := range products {
		count := s.faker.Number(1, 3)
		seen := make(map[uint]bool, count)
		for j := 0; j < count; j++ {
			category := categories[s.faker.Number(0, len(categories)-1)]
			if seen[category.ID] {
				continue
			}
			seen[category.ID] = true
			links = append(links, model.ProductCategory{
				ProductID:  product.ID,
				CategoryID: category.ID,
			})
		}
	}

	if err := s.db.CreateInBatches(&links, s.opts.BatchSize).Error; err != nil {
		return err
	}
	result.CategoryLinks = len(links)
	return nil
}

func (s *Seeder) seedCarts(users []model.User, products []model.Product, result *Result) error {
	var items []model.CartItem
	for _, user := range users {
		if s.faker.Number(1, 100) > 40 {
			continue
		}
		count := s.faker.Number(1, 4)
		seen := make(map[uint]bool, count)
		for j := 0; j < count; j++ {
			product := products[s.faker.Number(0, len(products)-1)]
			if seen[product.ID] {
				continue
			}
			seen[product.ID] = true
			items = append(items, model.CartItem{
				UserID:    user.ID,
				ProductID: product.ID,
				Quantity:  s.faker.Number(1, 5),
			})
		}
	}

	if len(items) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&items, s.opts.BatchSize).Error; err != nil {
		return err
	}
	result.CartItems = len(items)
	return nil
}

func (s *Seeder) seedWishlists(users []model.User, products []model.Product, result *Result) error {
	var wishlists []model.Wishlist
	for _, user := range users {
		if s.faker.Number(1, 100) > 30 {
			continue
		}
		wishlists = append(wishlists, model.Wishlist{
			UserID: user.ID,
			Name:   s.faker.RandomString([]string{"Favorites", "Gift ideas", "Someday", "Birthday"}),
		})
	}
	if len(wishlists) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&wishlists, s.opts.BatchSize).Error; err != nil {
		return err
	}
	result.Wishlists = len(wishlists)

	var items []model.WishlistItem
	for _, wishlist := range wishlists {
		count := s.faker.Number(1, 6)
		seen := make(map[uint]bool, count)
		for j := 0; j < count; j++ {
			product := products[s.faker.Number(0, len(products)-1)]
			if seen[product.ID] {
				continue
			}
			seen[product.ID] = true
			items = append(items, model.WishlistItem{
				WishlistID: wishlist.ID,
				ProductID:  product.ID,
			})
		}
	}
	if err := s.db.CreateInBatches(&items, s.opts.BatchSize).Error; err != nil {
		return err
	}
	result.WishlistItems = len(items)
	return nil
}

func (s *Seeder) seedOrders(users []model.User, products []model.Product, result *Result) ([]model.Order, error) {
	statuses := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusPaid,
		model.OrderStatusShipping,
		model.OrderStatusDelivered,
		model.OrderStatusCompleted,
		model.OrderStatusCanceled,
	}

	orders := make([]model.Order, 0, s.opts.Orders)
	for i := 0; i < s.opts.Orders; i++ {
		user := users[s.faker.Number(0, len(users)-1)]
		status := statuses[s.faker.Number(0, len(statuses)-1)]

		count := s.faker.Number(1, s.opts.MaxItemsPerOrder)
		seen := make(map[uint]bool, count)
		var items []model.OrderItem
		var total float64
		for j := 0; j < count; j++ {
			product := products[s.faker.Number(0, len(products)-1)]
			if seen[product.ID] {
				continue
			}
			seen[product.ID] = true
			quantity := s.faker.Number(1, 4)
			unitPrice := product.Price
			if product.DiscountPrice != nil {
				unitPrice = *product.DiscountPrice
			}
			items = append(items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  quantity,
				UnitPrice: unitPrice,
			})
			total += unitPrice * float64(quantity)
		}

		orders = append(orders, model.Order{
			UserID:      user.ID,
			OrderNumber: util.NewOrderNumber(user.ID, s.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())),
			Status:      status,
			TotalAmount: roundMoney(total),
			IsPaid:      status != model.OrderStatusPending && status != model.OrderStatusCanceled,
			Items:       items,
		})
	}

	if err := s.db.CreateInBatches(&orders, s.opts.BatchSize).Error; err != nil {
		return nil, err
	}
	result.Orders = len(orders)
	for _, order := range orders {
		result.OrderItems += len(order.Items)
	}
	return orders, nil
}

func (s *Seeder) seedPayments(orders []model.Order, result *Result) error {
	var payments []model.Payment
	for _, order := range orders {
		if !order.IsPaid {
			continue
		}
		transactionID := util.NewTransactionID()
		payments = append(payments, model.Payment{
			OrderID:       order.ID,
			UserID:        order.UserID,
			PaymentMethod: s.faker.RandomString([]string{"credit_card", "paypal", "bank_transfer"}),
			Amount:        order.TotalAmount,
			Status:        model.PaymentStatusCompleted,
			TransactionID: &transactionID,
		})
	}

	if len(payments) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&payments, s.opts.BatchSize).Error; err != nil {
		return err
	}
	result.Payments = len(payments)
	return nil
}

func (s *Seeder) seedReviews(users []model.User, products []model.Product, result *Result) error {
	target := s.opts.Products * 2
	if pairs := len(users) * len(products); target > pairs {
		target = pairs
	}
	seen := make(map[[2]uint]bool, target)
	var reviews []model.Review
	for len(reviews) < target {
		user := users[s.faker.Number(0, len(users)-1)]
		product := products[s.faker.Number(0, len(products)-1)]
		key := [2]uint{user.ID, product.ID}
		if seen[key] {
			continue
		}
		seen[key] = true
		reviews = append(reviews, model.Review{
			UserID:     user.ID,
			ProductID:  product.ID,
			Rating:     s.faker.Number(1, 5),
			Title:      s.faker.Sentence(4),
			Content:    s.faker.Paragraph(1, 2, 8, " "),
			IsApproved: s.faker.Number(1, 100) <= 80,
		})
	}

	if err := s.db.CreateInBatches(&reviews, s.opts.BatchSize).Error; err != nil {
		return err
	}
	result.Reviews = len(reviews)
	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
