package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID        uint  `json:"product_id" binding:"required"`
	ProductVariantID *uint `json:"product_variant_id"`
	Quantity         int   `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartRequest struct {
	// Zero removes the line item.
	Quantity *int `json:"quantity" binding:"required"`
}

type GuestCartRequest struct {
	SessionID        string `json:"session_id" binding:"required"`
	ProductID        uint   `json:"product_id" binding:"required"`
	ProductVariantID *uint  `json:"product_variant_id"`
	Quantity         int    `json:"quantity" binding:"required,gt=0"`
}

// GetCart returns user's cart with derived totals
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	summary, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": summary.Items,
		"item_count": summary.ItemCount,
		"subtotal":   summary.Subtotal,
	})
}

// AddToCart adds item to cart, merging quantities on repeat adds
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := ctrl.cartService.AddToCart(userID, req.ProductID, req.ProductVariantID, req.Quantity)
	if err != nil {
		ctrl.respondCartError(c, err, userID, req.ProductID)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart successfully",
	})
}

// UpdateCartItem sets a cart line's quantity; zero removes it
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.cartService.UpdateCartItem(userID, id, *req.Quantity); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		ctrl.respondCartError(c, err, userID, 0)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
	})
}

// RemoveFromCart removes a cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, id); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed successfully",
	})
}

// ClearCart removes every line from the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetGuestCart returns an anonymous session's cart
// GET /api/v1/guest-cart/:session_id
func (ctrl *CartController) GetGuestCart(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing session ID",
		})
		return
	}

	cart, err := ctrl.cartService.GetGuestCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch guest cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// AddToGuestCart adds an item to an anonymous session's cart
// POST /api/v1/guest-cart
func (ctrl *CartController) AddToGuestCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GuestCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := ctrl.cartService.AddToGuestCart(c.Request.Context(), req.SessionID, req.ProductID, req.ProductVariantID, req.Quantity)
	if err != nil {
		log.Warn("Failed to add to guest cart", map[string]interface{}{
			"session_id": req.SessionID,
			"error":      err.Error(),
		})
		ctrl.respondCartError(c, err, 0, req.ProductID)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart successfully",
	})
}

// respondCartError maps cart service errors to HTTP responses.
func (ctrl *CartController) respondCartError(c *gin.Context, err error, userID, productID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, service.ErrInvalidProductVariant):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product variant",
		})
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Insufficient stock",
		})
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid quantity",
		})
	default:
		log.Error("Cart operation failed", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Cart operation failed",
		})
	}
}
