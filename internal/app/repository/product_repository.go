package repository

import (
	"fmt"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice      ProductSort = "price"
	ProductSortRating     ProductSort = "rating"
	ProductSortNewest     ProductSort = "newest"
	ProductSortPopularity ProductSort = "popularity"
)

// ProductFilter narrows the catalog. Filters compose with AND; products that
// match keep their original (insertion) order unless SortBy reorders them.
type ProductFilter struct {
	MinPrice        *float64
	MaxPrice        *float64
	Category        *model.ProductCategory
	Subcategory     string // substring match
	Brands          []string
	MinRating       *float64
	Search          string
	SortBy          ProductSort
	SortAscending   bool
	Limit           int
	Offset          int
	IncludeVariants bool
}

type ProductAttributes struct {
	Categories []model.ProductCategory
	Brands     []string
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByCategory(category model.ProductCategory) ([]model.Product, error)
	ListAttributes() (ProductAttributes, error)
	Update(product *model.Product) error
	Delete(id uint) error
	UpdateStock(id uint, quantity int) error
	IncrementViewCount(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
		"brand":    product.Brand,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":     product.Name,
			"category": product.Category,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Info("Bulk creating products", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

func (r *productRepository) baseQuery(includeVariants bool) *gorm.DB {
	query := r.db.Model(&model.Product{})
	if includeVariants {
		query = query.Preload("Variants")
	}
	return query
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"min_price":   filter.MinPrice,
		"max_price":   filter.MaxPrice,
		"category":    filter.Category,
		"subcategory": filter.Subcategory,
		"brands":      filter.Brands,
		"min_rating":  filter.MinRating,
		"search":      filter.Search,
		"sort_by":     filter.SortBy,
		"ascending":   filter.SortAscending,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})

	query := r.baseQuery(filter.IncludeVariants)

	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.Category != nil {
		query = query.Where("products.category = ?", *filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("products.subcategory LIKE ?", fmt.Sprintf("%%%s%%", filter.Subcategory))
	}
	if len(filter.Brands) > 0 {
		query = query.Where("products.brand IN ?", filter.Brands)
	}
	if filter.MinRating != nil {
		query = query.Where("products.rating >= ?", *filter.MinRating)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}

	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.price " + direction)
		query = query.Order("products.id ASC")
	case ProductSortRating:
		query = query.Order("products.rating " + direction)
		query = query.Order("products.id ASC")
	case ProductSortNewest:
		// True recency by creation time, not list reversal.
		query = query.Order("products.created_at " + direction)
		query = query.Order("products.id DESC")
	case ProductSortPopularity:
		query = query.Order("products.review_count " + direction)
		query = query.Order("products.id ASC")
	default:
		// Unsorted listings keep catalog insertion order.
		query = query.Order("products.id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category": filter.Category,
			"search":   filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.baseQuery(true).First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

func (r *productRepository) FindByCategory(category model.ProductCategory) ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{Category: &category})
}

func (r *productRepository) ListAttributes() (ProductAttributes, error) {
	logger.Debug("Listing product attributes", nil)

	result := ProductAttributes{}

	var categoryValues []string
	if err := r.db.Model(&model.Product{}).
		Where("category IS NOT NULL AND category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categoryValues).Error; err != nil {
		logger.Error("Failed to fetch distinct categories", err, nil)
		return result, err
	}

	for _, category := range categoryValues {
		result.Categories = append(result.Categories, model.ProductCategory(category))
	}

	if err := r.db.Model(&model.Product{}).
		Where("brand IS NOT NULL AND brand <> ''").
		Distinct().
		Order("brand ASC").
		Pluck("brand", &result.Brands).Error; err != nil {
		logger.Error("Failed to fetch distinct brands", err, nil)
		return result, err
	}

	logger.Debug("Product attributes listed", map[string]interface{}{
		"category_count": len(result.Categories),
		"brand_count":    len(result.Brands),
	})
	return result, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateStock(id uint, quantity int) error {
	logger.Debug("Updating product stock in database", map[string]interface{}{
		"product_id": id,
		"quantity":   quantity,
	})

	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error; err != nil {
		logger.Error("Failed to update product stock in database", err, map[string]interface{}{
			"product_id": id,
			"quantity":   quantity,
		})
		return err
	}
	return nil
}

func (r *productRepository) IncrementViewCount(id uint) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		logger.Error("Failed to increment product view count in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
