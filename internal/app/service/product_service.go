package service

import (
	"errors"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrInvalidProductVariant = errors.New("invalid product variant")
	ErrInvalidCategory       = errors.New("invalid product category")
)

type ProductSort string

const (
	ProductSortPrice      ProductSort = "price"
	ProductSortRating     ProductSort = "rating"
	ProductSortNewest     ProductSort = "newest"
	ProductSortPopularity ProductSort = "popularity"
)

type ProductListOptions struct {
	Category        *model.ProductCategory
	Subcategory     string
	MinPrice        *float64
	MaxPrice        *float64
	Brands          []string
	MinRating       *float64
	Search          string
	Sort            ProductSort
	SortAscending   bool
	Limit           int
	Offset          int
	IncludeVariants bool
}

// ProductFilterSummary holds the values the storefront can filter on,
// derived from what is actually in the catalog.
type ProductFilterSummary struct {
	Categories []model.ProductCategory `json:"categories"`
	Brands     []string                `json:"brands"`
}

// SubcategoryGroup is a catalog slice keyed by subcategory tag, used by
// the category landing pages.
type SubcategoryGroup struct {
	Subcategory string          `json:"subcategory"`
	Products    []model.Product `json:"products"`
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductsByCategory(category model.ProductCategory) ([]model.Product, error)
	GetProductsGroupedBySubcategory(category model.ProductCategory) ([]SubcategoryGroup, error)
	GetAvailableFilters() (ProductFilterSummary, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	RecordView(id uint) error
	CheckStock(productID uint, variantID *uint, quantity int) error

	CreateVariant(variant *model.ProductVariant) error
	ListVariants(productID uint) ([]model.ProductVariant, error)
	UpdateVariant(variant *model.ProductVariant) error
	DeleteVariant(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

func NewProductService(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func isValidCategory(category model.ProductCategory) bool {
	switch category {
	case model.CategoryFashion, model.CategoryElectronics, model.CategoryBeauty,
		model.CategoryGrocery, model.CategorySports:
		return true
	}
	return false
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category":  opts.Category,
		"min_price": opts.MinPrice,
		"max_price": opts.MaxPrice,
		"brands":    opts.Brands,
		"search":    opts.Search,
		"sort":      opts.Sort,
		"limit":     opts.Limit,
		"offset":    opts.Offset,
	})

	if opts.Category != nil && !isValidCategory(*opts.Category) {
		logger.Warn("Rejecting product list: unknown category", map[string]interface{}{
			"category": *opts.Category,
		})
		return nil, ErrInvalidCategory
	}

	filter := repository.ProductFilter{
		Category:        opts.Category,
		Subcategory:     opts.Subcategory,
		MinPrice:        opts.MinPrice,
		MaxPrice:        opts.MaxPrice,
		Brands:          opts.Brands,
		MinRating:       opts.MinRating,
		Search:          opts.Search,
		SortAscending:   opts.SortAscending,
		Limit:           opts.Limit,
		Offset:          opts.Offset,
		IncludeVariants: opts.IncludeVariants,
	}

	switch opts.Sort {
	case ProductSortPrice:
		filter.SortBy = repository.ProductSortPrice
	case ProductSortRating:
		filter.SortBy = repository.ProductSortRating
	case ProductSortNewest:
		filter.SortBy = repository.ProductSortNewest
	case ProductSortPopularity:
		filter.SortBy = repository.ProductSortPopularity
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductsByCategory(category model.ProductCategory) ([]model.Product, error) {
	if !isValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	products, err := s.productRepo.FindByCategory(category)
	if err != nil {
		logger.Error("Failed to fetch products by category", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductsGroupedBySubcategory(category model.ProductCategory) ([]SubcategoryGroup, error) {
	products, err := s.GetProductsByCategory(category)
	if err != nil {
		return nil, err
	}

	// Groups keep first-seen order so the landing page layout is stable
	// across reloads.
	var groups []SubcategoryGroup
	index := make(map[string]int)
	for _, p := range products {
		key := p.Subcategory
		if key == "" {
			key = "general"
		}
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, SubcategoryGroup{Subcategory: key})
			i = index[key]
		}
		groups[i].Products = append(groups[i].Products, p)
	}

	logger.Debug("Products grouped by subcategory", map[string]interface{}{
		"category": category,
		"groups":   len(groups),
	})
	return groups, nil
}

func (s *productService) GetAvailableFilters() (ProductFilterSummary, error) {
	attrs, err := s.productRepo.ListAttributes()
	if err != nil {
		logger.Error("Failed to list product attributes", err)
		return ProductFilterSummary{}, err
	}
	return ProductFilterSummary{
		Categories: attrs.Categories,
		Brands:     attrs.Brands,
	}, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if !isValidCategory(product.Category) {
		return ErrInvalidCategory
	}

	if product.OriginalPrice > 0 && product.OriginalPrice > product.Price {
		product.Discount = int((product.OriginalPrice - product.Price) / product.OriginalPrice * 100)
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
	})

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.Category != "" && !isValidCategory(product.Category) {
		return ErrInvalidCategory
	}

	product.CreatedAt = existing.CreatedAt
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return s.productRepo.Delete(id)
}

func (s *productService) RecordView(id uint) error {
	if err := s.productRepo.IncrementViewCount(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// CheckStock verifies the product (and variant, when given) can cover the
// requested quantity.
func (s *productService) CheckStock(productID uint, variantID *uint, quantity int) error {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.StockQuantity < quantity {
		logger.Warn("Insufficient product stock", map[string]interface{}{
			"product_id": productID,
			"requested":  quantity,
			"available":  product.StockQuantity,
		})
		return ErrInsufficientStock
	}

	if variantID != nil {
		variant, err := s.variantRepo.FindByID(*variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidProductVariant
			}
			return err
		}
		if variant.ProductID != productID {
			return ErrInvalidProductVariant
		}
		if variant.StockQuantity < quantity {
			logger.Warn("Insufficient variant stock", map[string]interface{}{
				"variant_id": *variantID,
				"requested":  quantity,
				"available":  variant.StockQuantity,
			})
			return ErrInsufficientStock
		}
	}

	return nil
}

func (s *productService) CreateVariant(variant *model.ProductVariant) error {
	logger.Info("Creating product variant", map[string]interface{}{
		"product_id": variant.ProductID,
		"name":       variant.Name,
		"value":      variant.Value,
	})

	if _, err := s.productRepo.FindByID(variant.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return s.variantRepo.Create(variant)
}

func (s *productService) ListVariants(productID uint) ([]model.ProductVariant, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.variantRepo.FindByProductID(productID)
}

func (s *productService) UpdateVariant(variant *model.ProductVariant) error {
	existing, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidProductVariant
		}
		return err
	}

	variant.ProductID = existing.ProductID
	return s.variantRepo.Update(variant)
}

func (s *productService) DeleteVariant(id uint) error {
	if _, err := s.variantRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidProductVariant
		}
		return err
	}
	return s.variantRepo.Delete(id)
}
