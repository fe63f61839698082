package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/GLEKOV/SQL-practice-shop-db/config"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/db"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
)

func main() {
	limit := flag.Int("limit", 10, "row limit for top-N reports")
	perCategory := flag.Int("per-category", 3, "products per category in the category leaderboard")
	userID := flag.Uint("user", 0, "user ID for the per-user order totals report (0 = skip)")
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

	reports := repository.NewReportRepository(gdb)

	fmt.Printf("== Top %d products by order count ==\n", *limit)
	topByOrders, err := reports.TopProductsByOrders(*limit)
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range topByOrders {
		fmt.Printf("  %-40s %-12s orders=%-5d units=%-5d revenue=%.2f\n",
			row.Name, row.SKU, row.OrderCount, row.UnitsSold, row.Revenue)
	}

	fmt.Printf("\n== Top %d selling products by units ==\n", *limit)
	topSelling, err := reports.TopSellingProducts(*limit)
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range topSelling {
		fmt.Printf("  %-40s units=%-5d revenue=%.2f\n", row.Name, row.UnitsSold, row.Revenue)
	}

	fmt.Println("\n== Price statistics per category ==")
	priceStats, err := reports.AveragePriceByCategory()
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range priceStats {
		fmt.Printf("  %-30s products=%-5d avg=%.2f min=%.2f max=%.2f\n",
			row.CategoryName, row.ProductCount, row.AvgPrice, row.MinPrice, row.MaxPrice)
	}

	fmt.Printf("\n== Top %d spending users ==\n", *limit)
	spenders, err := reports.TopSpendingUsers(*limit)
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range spenders {
		fmt.Printf("  %-40s orders=%-5d spent=%.2f\n", row.Email, row.OrderCount, row.TotalSpent)
	}

	fmt.Println("\n== Products priced above their category average ==")
	aboveAvg, err := reports.ProductsAboveCategoryAverage()
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range aboveAvg {
		fmt.Printf("  %-40s %-30s price=%.2f category avg=%.2f\n",
			row.Name, row.CategoryName, row.Price, row.CategoryAvg)
	}

	fmt.Println("\n== Categories by average order value ==")
	orderValues, err := reports.CategoriesByAverageOrderValue()
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range orderValues {
		fmt.Printf("  %-30s orders=%-5d avg value=%.2f\n",
			row.CategoryName, row.OrderCount, row.AvgOrderValue)
	}

	fmt.Println("\n== Orders above the median total ==")
	aboveMedian, err := reports.OrdersAboveMedianTotal()
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range aboveMedian {
		fmt.Printf("  %-24s user=%-5d total=%.2f (median %.2f)\n",
			row.OrderNumber, row.UserID, row.Total, row.MedianTotal)
	}

	fmt.Printf("\n== Product ranking by order count (top %d) ==\n", *limit)
	ranked, err := reports.RankProductsByOrderCount(*limit)
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range ranked {
		fmt.Printf("  #%-3d %-40s orders=%d\n", row.Rank, row.Name, row.OrderCount)
	}

	fmt.Printf("\n== Top %d products per category ==\n", *perCategory)
	perCat, err := reports.TopProductsPerCategory(*perCategory)
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range perCat {
		fmt.Printf("  %-30s #%d %-40s units=%d\n",
			row.CategoryName, row.RowNumber, row.ProductName, row.UnitsSold)
	}

	fmt.Println("\n== Repeat purchases (same product, 2+ orders) ==")
	repeats, err := reports.RepeatPurchases(2)
	if err != nil {
		log.Fatal("Report failed:", err)
	}
	for _, row := range repeats {
		fmt.Printf("  %-40s %-40s orders=%d\n", row.Email, row.Product, row.OrderCount)
	}

	if *userID > 0 {
		fmt.Printf("\n== Order totals for user %d ==\n", *userID)
		totals, err := reports.OrderTotalsForUser(*userID)
		if err != nil {
			log.Fatal("Report failed:", err)
		}
		for _, row := range totals {
			fmt.Printf("  %-24s %-10s items=%-3d total=%.2f %s\n",
				row.OrderNumber, row.Status, row.ItemCount, row.Total,
				row.CreatedAt.Format("2006-01-02"))
		}
	}
}
