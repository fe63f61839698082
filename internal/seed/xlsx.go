package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Expected column order in the product sheet.
// sku | name | description | brand | price | discount_price | stock | is_active
const productColumns = 8

// ReadProductsFromXLSX loads a product catalog from the first sheet of an
// XLSX file. The first row is treated as a header. Rows with a missing SKU,
// an unparsable price or too few columns are skipped, not fatal.
func ReadProductsFromXLSX(filePath string) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenSKUs := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < productColumns {
			skipped++
			continue
		}

		sku := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if sku == "" || name == "" || seenSKUs[sku] {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}

		product := model.Product{
			SKU:         sku,
			Name:        name,
			Description: strings.TrimSpace(row[2]),
			Brand:       strings.TrimSpace(row[3]),
			Price:       price,
			Slug:        fmt.Sprintf("%s-%s", util.Slugify(name), strings.ToLower(sku)),
			IsActive:    true,
		}

		if raw := strings.TrimSpace(row[5]); raw != "" {
			discount, err := strconv.ParseFloat(raw, 64)
			if err == nil && discount >= 0 {
				product.DiscountPrice = &discount
			}
		}
		if raw := strings.TrimSpace(row[6]); raw != "" {
			if stock, err := strconv.Atoi(raw); err == nil && stock >= 0 {
				product.Stock = stock
			}
		}
		if raw := strings.TrimSpace(row[7]); raw != "" {
			if active, err := strconv.ParseBool(raw); err == nil {
				product.IsActive = active
			}
		}

		seenSKUs[sku] = true
		products = append(products, product)
	}

	return products, skipped, nil
}
