package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/middleware"
)

type OrderController struct {
	orderService        service.OrderService
	notificationService service.NotificationService
}

func NewOrderController(orderService service.OrderService, notificationService service.NotificationService) *OrderController {
	return &OrderController{
		orderService:        orderService,
		notificationService: notificationService,
	}
}

type CreateOrderRequest struct {
	ShippingName  string `json:"shipping_name" binding:"required"`
	ShippingPhone string `json:"shipping_phone"`
	ShippingAddr  string `json:"shipping_address" binding:"required"`
	CouponCode    string `json:"coupon_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder places an order from the current cart
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	shipping := service.ShippingDetails{
		Name:    req.ShippingName,
		Phone:   req.ShippingPhone,
		Address: req.ShippingAddr,
	}

	order, err := ctrl.orderService.CreateOrderFromCart(userID, shipping, req.CouponCode)
	if err != nil {
		ctrl.respondOrderError(c, err, userID)
		return
	}

	if err := ctrl.notificationService.NotifyOrderPlaced(order); err != nil {
		log.Warn("Failed to create order notification", map[string]interface{}{
			"order_id": order.ID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// GetOrders returns the user's order history
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
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
			"error": "Invalid order ID",
		})
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// CancelOrder cancels the user's own order and restores stock
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
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
			"error": "Invalid order ID",
		})
		return
	}

	if err := ctrl.orderService.CancelOrder(userID, id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		if errors.Is(err, service.ErrOrderNotCancellable) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order can no longer be cancelled",
			})
			return
		}
		log.Error("Failed to cancel order", err, map[string]interface{}{
			"order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to cancel order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
	})
}

// ListAllOrders returns every order, optionally filtered by status (admin)
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.OrderFilter{}
	if status := c.Query("status"); status != "" {
		s := model.OrderStatus(status)
		filter.Status = &s
	}
	filter.Limit, filter.Offset = parsePagination(c)

	orders, err := ctrl.orderService.ListOrders(filter)
	if err != nil {
		log.Error("Failed to list orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus advances an order along its status flow (admin)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	status := model.OrderStatus(req.Status)
	if err := ctrl.orderService.UpdateOrderStatus(id, status); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Invalid status transition",
			})
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   req.Status,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update order status",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
	})
}

// parsePagination reads limit/offset query parameters.
func parsePagination(c *gin.Context) (int, int) {
	limit, offset := 0, 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func (ctrl *OrderController) respondOrderError(c *gin.Context, err error, userID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
	case errors.Is(err, service.ErrInvalidShipping):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Incomplete shipping details",
		})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, service.ErrInvalidProductVariant):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product variant",
		})
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Insufficient stock",
		})
	case errors.Is(err, service.ErrCouponNotFound):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Coupon not found",
		})
	case errors.Is(err, service.ErrCouponNotActive),
		errors.Is(err, service.ErrCouponExhausted),
		errors.Is(err, service.ErrCouponMinNotMet):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Coupon cannot be applied",
		})
	default:
		log.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
	}
}
