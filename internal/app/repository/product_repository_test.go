package repository

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)
	return testDB, repo
}

func seedFilterCatalog(t *testing.T, repo ProductRepository) []model.Product {
	t.Helper()

	products := []model.Product{
		{
			Name:          "Runner Sneakers",
			Brand:         "Stride",
			Price:         89.99,
			Rating:        4.2,
			ReviewCount:   120,
			Category:      model.CategoryFashion,
			Subcategory:   "mens-shoes",
			StockQuantity: 30,
		},
		{
			Name:          "Noise Cancelling Headphones",
			Brand:         "Soniq",
			Price:         249.00,
			Rating:        4.7,
			ReviewCount:   85,
			Category:      model.CategoryElectronics,
			Subcategory:   "audio",
			StockQuantity: 12,
		},
		{
			Name:          "Trail Sneakers",
			Brand:         "Stride",
			Price:         119.00,
			Rating:        3.8,
			ReviewCount:   40,
			Category:      model.CategoryFashion,
			Subcategory:   "mens-shoes",
			StockQuantity: 18,
		},
		{
			Name:          "Vitamin C Serum",
			Brand:         "Glowa",
			Price:         24.50,
			Rating:        4.9,
			ReviewCount:   300,
			Category:      model.CategoryBeauty,
			Subcategory:   "skincare",
			StockQuantity: 100,
		},
	}

	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
	return products
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Runner Sneakers",
		Description:   "Lightweight everyday running shoe",
		Brand:         "Stride",
		Price:         89.99,
		Category:      model.CategoryFashion,
		Subcategory:   "mens-shoes",
		StockQuantity: 30,
		ImageURLs:     pq.StringArray{"https://cdn.example.com/sneakers.jpg", "https://cdn.example.com/sneakers-side.jpg"},
	}

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)

	// Image URLs survive the array-column round trip
	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{
		"https://cdn.example.com/sneakers.jpg",
		"https://cdn.example.com/sneakers-side.jpg",
	}, found.ImageURLs)
}

func TestProductRepository_BulkCreate(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products := []model.Product{
		{Name: "Item A", Price: 10, Category: model.CategoryGrocery, StockQuantity: 5},
		{Name: "Item B", Price: 20, Category: model.CategoryGrocery, StockQuantity: 5},
		{Name: "Item C", Price: 30, Category: model.CategoryGrocery, StockQuantity: 5},
	}

	err := repo.BulkCreate(products, 2)
	assert.NoError(t, err)

	found, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestProductRepository_FindByID(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Runner Sneakers",
		Price:         89.99,
		Category:      model.CategoryFashion,
		StockQuantity: 30,
	}
	require.NoError(t, repo.Create(product))

	tests := []struct {
		name    string
		id      uint
		wantErr bool
	}{
		{
			name:    "Existing product",
			id:      product.ID,
			wantErr: false,
		},
		{
			name:    "Non-existing product",
			id:      9999,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				assert.Equal(t, product.Name, found.Name)
			}
		})
	}
}

func TestProductRepository_FindWithFilter(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	seedFilterCatalog(t, repo)

	fashion := model.CategoryFashion
	minPrice := 50.0
	maxPrice := 150.0
	minRating := 4.0

	tests := []struct {
		name      string
		filter    ProductFilter
		wantNames []string
	}{
		{
			name:      "No filter returns everything in insertion order",
			filter:    ProductFilter{},
			wantNames: []string{"Runner Sneakers", "Noise Cancelling Headphones", "Trail Sneakers", "Vitamin C Serum"},
		},
		{
			name:      "Category filter",
			filter:    ProductFilter{Category: &fashion},
			wantNames: []string{"Runner Sneakers", "Trail Sneakers"},
		},
		{
			name:      "Price band",
			filter:    ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice},
			wantNames: []string{"Runner Sneakers", "Trail Sneakers"},
		},
		{
			name:      "Brand filter",
			filter:    ProductFilter{Brands: []string{"Soniq", "Glowa"}},
			wantNames: []string{"Noise Cancelling Headphones", "Vitamin C Serum"},
		},
		{
			name:      "Minimum rating",
			filter:    ProductFilter{MinRating: &minRating},
			wantNames: []string{"Runner Sneakers", "Noise Cancelling Headphones", "Vitamin C Serum"},
		},
		{
			name:      "Subcategory match",
			filter:    ProductFilter{Subcategory: "shoes"},
			wantNames: []string{"Runner Sneakers", "Trail Sneakers"},
		},
		{
			name:      "Search over name",
			filter:    ProductFilter{Search: "Sneakers"},
			wantNames: []string{"Runner Sneakers", "Trail Sneakers"},
		},
		{
			name:      "Combined brand and rating",
			filter:    ProductFilter{Brands: []string{"Stride"}, MinRating: &minRating},
			wantNames: []string{"Runner Sneakers"},
		},
		{
			name:      "Price ascending",
			filter:    ProductFilter{SortBy: ProductSortPrice, SortAscending: true},
			wantNames: []string{"Vitamin C Serum", "Runner Sneakers", "Trail Sneakers", "Noise Cancelling Headphones"},
		},
		{
			name:      "Price descending",
			filter:    ProductFilter{SortBy: ProductSortPrice},
			wantNames: []string{"Noise Cancelling Headphones", "Trail Sneakers", "Runner Sneakers", "Vitamin C Serum"},
		},
		{
			name:      "Rating descending",
			filter:    ProductFilter{SortBy: ProductSortRating},
			wantNames: []string{"Vitamin C Serum", "Noise Cancelling Headphones", "Runner Sneakers", "Trail Sneakers"},
		},
		{
			name:      "Popularity descending",
			filter:    ProductFilter{SortBy: ProductSortPopularity},
			wantNames: []string{"Vitamin C Serum", "Runner Sneakers", "Noise Cancelling Headphones", "Trail Sneakers"},
		},
		{
			name:      "Limit and offset",
			filter:    ProductFilter{Limit: 2, Offset: 1},
			wantNames: []string{"Noise Cancelling Headphones", "Trail Sneakers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindWithFilter(tt.filter)
			require.NoError(t, err)

			names := make([]string, len(found))
			for i, p := range found {
				names[i] = p.Name
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestProductRepository_FindWithFilterNewest(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products := seedFilterCatalog(t, repo)

	// Backdate the first product so creation time, not ID, decides order
	err := testDB.Model(&model.Product{}).
		Where("id = ?", products[0].ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error
	require.NoError(t, err)

	found, err := repo.FindWithFilter(ProductFilter{SortBy: ProductSortNewest})
	require.NoError(t, err)
	require.Len(t, found, 4)
	assert.Equal(t, products[0].ID, found[len(found)-1].ID)
}

func TestProductRepository_ListAttributes(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	seedFilterCatalog(t, repo)

	attrs, err := repo.ListAttributes()
	require.NoError(t, err)
	assert.Len(t, attrs.Categories, 3)
	assert.Len(t, attrs.Brands, 3)
	assert.Contains(t, attrs.Brands, "Stride")
}

func TestProductRepository_UpdateStock(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Runner Sneakers",
		Price:         89.99,
		Category:      model.CategoryFashion,
		StockQuantity: 10,
	}
	require.NoError(t, repo.Create(product))

	err := repo.UpdateStock(product.ID, -3)
	assert.NoError(t, err)

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, found.StockQuantity)
}

func TestProductRepository_IncrementViewCount(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Runner Sneakers",
		Price:         89.99,
		Category:      model.CategoryFashion,
		StockQuantity: 10,
	}
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.IncrementViewCount(product.ID))
	require.NoError(t, repo.IncrementViewCount(product.ID))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewCount)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Runner Sneakers",
		Price:         89.99,
		Category:      model.CategoryFashion,
		StockQuantity: 10,
	}
	require.NoError(t, repo.Create(product))

	err := repo.Delete(product.ID)
	assert.NoError(t, err)

	found, err := repo.FindByID(product.ID)
	assert.Error(t, err)
	assert.Nil(t, found)
}
