package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/GLEKOV/SQL-practice-shop-db/config"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/db"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/seed"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	users := flag.Int("users", 0, "number of users to generate (0 = default)")
	categories := flag.Int("categories", 0, "number of categories to generate (0 = default)")
	products := flag.Int("products", 0, "number of products to generate (0 = default)")
	orders := flag.Int("orders", 0, "number of orders to generate (0 = default)")
	randomSeed := flag.Uint64("seed", 0, "random seed (0 = non-deterministic)")
	xlsxPath := flag.String("xlsx", "", "import products from an XLSX catalog instead of generating them")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	gdb, err := db.New(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if *xlsxPath != "" {
		importProducts(gdb, *xlsxPath, cfg.Seed.BatchSize, *yes)
		return
	}

	if !*yes && !confirm("Seed the database with generated data? (yes/no): ") {
		fmt.Println("Seeding cancelled.")
		return
	}

	seeder := seed.New(gdb, seed.Options{
		Users:      *users,
		Categories: *categories,
		Products:   *products,
		Orders:     *orders,
		BatchSize:  cfg.Seed.BatchSize,
		RandomSeed: *randomSeed,
	})

	result, err := seeder.Run()
	printResult(result)
	if err != nil {
		log.Fatal("Seeding aborted:", err)
	}
	fmt.Println("Seeding completed successfully!")
}

func importProducts(gdb *gorm.DB, path string, batchSize int, skipConfirm bool) {
	fmt.Printf("Reading XLSX file: %s\n", path)
	products, skipped, err := seed.ReadProductsFromXLSX(path)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped rows: %d)\n", len(products), skipped)

	if !skipConfirm && !confirm("Do you want to proceed with the import? (yes/no): ") {
		fmt.Println("Import cancelled.")
		return
	}

	productRepo := repository.NewProductRepository(gdb)
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "yes" || answer == "y"
}

func printResult(result *seed.Result) {
	fmt.Println("Rows committed:")
	fmt.Printf("  users:          %d\n", result.Users)
	fmt.Printf("  addresses:      %d\n", result.Addresses)
	fmt.Printf("  categories:     %d\n", result.Categories)
	fmt.Printf("  products:       %d\n", result.Products)
	fmt.Printf("  category links: %d\n", result.CategoryLinks)
	fmt.Printf("  cart items:     %d\n", result.CartItems)
	fmt.Printf("  wishlists:      %d\n", result.Wishlists)
	fmt.Printf("  wishlist items: %d\n", result.WishlistItems)
	fmt.Printf("  orders:         %d\n", result.Orders)
	fmt.Printf("  order items:    %d\n", result.OrderItems)
	fmt.Printf("  payments:       %d\n", result.Payments)
	fmt.Printf("  reviews:        %d\n", result.Reviews)
}
