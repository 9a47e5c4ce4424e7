package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

// GetWishlist returns the user's wishlist, newest first
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	items, err := ctrl.wishlistService.GetUserWishlist(userID)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist": items,
		"count":    len(items),
	})
}

// ToggleWishlist flips a product's wishlist membership
// POST /api/v1/wishlist/:product_id/toggle
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	wishlisted, err := ctrl.wishlistService.Toggle(userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to toggle wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlisted": wishlisted,
	})
}

// RemoveFromWishlist removes a product from the wishlist
// DELETE /api/v1/wishlist/:product_id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if err := ctrl.wishlistService.Remove(userID, productID); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Wishlist item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from wishlist",
	})
}

// CheckWishlist reports whether a product is wishlisted
// GET /api/v1/wishlist/:product_id
func (ctrl *WishlistController) CheckWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	wishlisted, err := ctrl.wishlistService.Contains(userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlisted": wishlisted,
	})
}
