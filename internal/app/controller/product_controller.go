package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice float64  `json:"original_price"`
	Category      string   `json:"category" binding:"required"`
	Subcategory   string   `json:"subcategory"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	ImageURLs     []string `json:"image_urls"`
}

type CreateVariantRequest struct {
	Name          string  `json:"name" binding:"required"`
	Value         string  `json:"value" binding:"required"`
	PriceModifier float64 `json:"price_modifier"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	IsDefault     bool    `json:"is_default"`
}

// parseListOptions maps catalog query parameters to service options.
func parseListOptions(c *gin.Context) service.ProductListOptions {
	opts := service.ProductListOptions{
		Subcategory:     c.Query("subcategory"),
		Search:          c.Query("search"),
		IncludeVariants: c.Query("include_variants") == "true",
	}

	if category := c.Query("category"); category != "" {
		cat := model.ProductCategory(category)
		opts.Category = &cat
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			opts.MinPrice = &v
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			opts.MaxPrice = &v
		}
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			opts.MinRating = &v
		}
	}
	if brands := c.Query("brands"); brands != "" {
		opts.Brands = strings.Split(brands, ",")
	}

	switch c.Query("sort") {
	case "price_asc":
		opts.Sort = service.ProductSortPrice
		opts.SortAscending = true
	case "price_desc":
		opts.Sort = service.ProductSortPrice
	case "rating":
		opts.Sort = service.ProductSortRating
	case "newest":
		opts.Sort = service.ProductSortNewest
	case "popularity":
		opts.Sort = service.ProductSortPopularity
	}

	if limit := c.Query("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 {
			opts.Limit = v
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil && v > 0 {
			opts.Offset = v
		}
	}

	return opts
}

// ListProducts returns the filtered catalog
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := parseListOptions(c)
	products, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category",
			})
			return
		}
		log.Error("Failed to list products", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with its variants and bumps its view count
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	if err := ctrl.productService.RecordView(id); err != nil {
		log.Warn("Failed to record product view", map[string]interface{}{
			"product_id": id,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetCategoryProducts returns a category grouped by subcategory
// GET /api/v1/products/category/:category
func (ctrl *ProductController) GetCategoryProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := model.ProductCategory(c.Param("category"))
	groups, err := ctrl.productService.GetProductsGroupedBySubcategory(category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category",
			})
			return
		}
		log.Error("Failed to fetch category products", err, map[string]interface{}{
			"category": category,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"groups":   groups,
	})
}

// GetFilters returns the filterable attribute values present in the catalog
// GET /api/v1/products/filters
func (ctrl *ProductController) GetFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	summary, err := ctrl.productService.GetAvailableFilters()
	if err != nil {
		log.Error("Failed to fetch filters", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch filters",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filters": summary,
	})
}

// CreateProduct creates a catalog entry (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      model.ProductCategory(req.Category),
		Subcategory:   req.Subcategory,
		StockQuantity: req.StockQuantity,
		ImageURLs:     pq.StringArray(req.ImageURLs),
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category",
			})
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct updates a catalog entry (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	product.ID = id

	if err := ctrl.productService.UpdateProduct(&product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category",
			})
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct removes a catalog entry (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// ListVariants returns a product's variants
// GET /api/v1/products/:id/variants
func (ctrl *ProductController) ListVariants(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	variants, err := ctrl.productService.ListVariants(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch variants",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variants": variants,
	})
}

// CreateVariant adds a variant to a product (admin)
// POST /api/v1/admin/products/:id/variants
func (ctrl *ProductController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	variant := &model.ProductVariant{
		ProductID:     id,
		Name:          req.Name,
		Value:         req.Value,
		PriceModifier: req.PriceModifier,
		StockQuantity: req.StockQuantity,
		IsDefault:     req.IsDefault,
	}

	if err := ctrl.productService.CreateVariant(variant); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to create variant", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create variant",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"variant": variant,
	})
}

// DeleteVariant removes a variant (admin)
// DELETE /api/v1/admin/variants/:id
func (ctrl *ProductController) DeleteVariant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid variant ID",
		})
		return
	}

	if err := ctrl.productService.DeleteVariant(id); err != nil {
		if errors.Is(err, service.ErrInvalidProductVariant) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Variant not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete variant",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant deleted successfully",
	})
}

// parseIDParam parses a uint path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	return parseIDValue(c.Param(name))
}

func parseIDValue(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
