package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopverse/shopverse-backend/config"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a product catalog from an XLSX export. Expected columns:
// Name, Category, Subcategory, Brand, Price, Original Price, Stock,
// Rating, Review Count, Description, Image URL
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped %d rows)\n", len(products), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

var validCategories = map[string]model.ProductCategory{
	"fashion":     model.CategoryFashion,
	"electronics": model.CategoryElectronics,
	"beauty":      model.CategoryBeauty,
	"grocery":     model.CategoryGrocery,
	"sports":      model.CategorySports,
}

func readProductsFromXLSX(filePath string) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenNames := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 7 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		category := strings.ToLower(strings.TrimSpace(row[1]))
		subcategory := strings.TrimSpace(row[2])
		brand := strings.TrimSpace(row[3])

		if name == "" {
			skipped++
			continue
		}
		if seenNames[name] {
			skipped++
			continue
		}

		cat, ok := validCategories[category]
		if !ok {
			fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, category)
			skipped++
			continue
		}

		price := parseFloat(row, 4)
		if price <= 0 {
			skipped++
			continue
		}
		originalPrice := parseFloat(row, 5)
		stock := parseIntCell(row, 6)
		rating := parseFloat(row, 7)
		reviewCount := parseIntCell(row, 8)

		discount := 0
		if originalPrice > price {
			discount = int((originalPrice - price) / originalPrice * 100)
		}

		product := model.Product{
			Name:          name,
			Category:      cat,
			Subcategory:   subcategory,
			Brand:         brand,
			Price:         price,
			OriginalPrice: originalPrice,
			Discount:      discount,
			StockQuantity: stock,
			Rating:        rating,
			ReviewCount:   reviewCount,
		}
		if len(row) > 9 {
			product.Description = strings.TrimSpace(row[9])
		}
		if len(row) > 10 {
			// The image column may carry several comma-separated URLs
			for _, raw := range strings.Split(row[10], ",") {
				if url := strings.TrimSpace(raw); url != "" {
					product.ImageURLs = append(product.ImageURLs, url)
				}
			}
		}

		products = append(products, product)
		seenNames[name] = true
	}

	return products, skipped, nil
}

func parseFloat(row []string, idx int) float64 {
	if idx >= len(row) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntCell(row []string, idx int) int {
	if idx >= len(row) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(row[idx]))
	if err != nil {
		return 0
	}
	return v
}
