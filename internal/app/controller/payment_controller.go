package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/middleware"
	"github.com/shopverse/shopverse-backend/pkg/payment/mockpay"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

type CheckoutRequest struct {
	OrderID    uint   `json:"order_id" binding:"required"`
	CardNumber string `json:"card_number" binding:"required"`
	HolderName string `json:"holder_name" binding:"required"`
	ExpiryMonth int   `json:"expiry_month" binding:"required"`
	ExpiryYear  int   `json:"expiry_year" binding:"required"`
	CVV         string `json:"cvv" binding:"required"`
}

// Checkout charges the gateway for a pending order. The request context
// carries through to the gateway, so a dropped connection aborts the charge.
// POST /api/v1/payments/checkout
func (ctrl *PaymentController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	card := mockpay.Card{
		Number:      req.CardNumber,
		HolderName:  req.HolderName,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVV:         req.CVV,
	}

	result, err := ctrl.paymentService.Checkout(c.Request.Context(), userID, req.OrderID, card)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrOrderAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order is already paid",
			})
		case errors.Is(err, service.ErrOrderNotPayable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order cannot be paid in its current state",
			})
		case errors.Is(err, service.ErrPaymentCardInvalid):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid card details",
			})
		case errors.Is(err, service.ErrPaymentDeclined):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":  "Payment declined",
				"result": result,
			})
		case errors.Is(err, service.ErrPaymentAborted):
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error": "Payment aborted",
			})
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": req.OrderID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Checkout failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
	})
}

// GetPaymentHistory lists the user's past charge attempts
// GET /api/v1/payments
func (ctrl *PaymentController) GetPaymentHistory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	payments, err := ctrl.paymentService.GetPaymentHistory(userID)
	if err != nil {
		log.Error("Failed to fetch payment history", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch payment history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

// GetOrderPayments lists charge attempts for one order
// GET /api/v1/orders/:id/payments
func (ctrl *PaymentController) GetOrderPayments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	payments, err := ctrl.paymentService.GetOrderPayments(userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch payments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
	})
}
