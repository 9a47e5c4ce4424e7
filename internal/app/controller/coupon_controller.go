package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	apperrors "github.com/shopverse/shopverse-backend/internal/errors"
	"github.com/shopverse/shopverse-backend/internal/middleware"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

type CouponRequest struct {
	Code           string    `json:"code" binding:"required"`
	Description    string    `json:"description"`
	Type           string    `json:"type" binding:"required"`
	Value          float64   `json:"value" binding:"required,gt=0"`
	MinOrderAmount float64   `json:"min_order_amount"`
	UsageLimit     int       `json:"usage_limit"`
	StartsAt       time.Time `json:"starts_at"`
	ExpiresAt      time.Time `json:"expires_at" binding:"required"`
	Active         bool      `json:"active"`
}

type QuoteCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}

// QuoteCoupon checks a coupon against the cart subtotal
// POST /api/v1/coupons/quote
func (ctrl *CouponController) QuoteCoupon(c *gin.Context) {
	var req QuoteCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	quote, err := ctrl.couponService.Quote(req.Code, req.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
		case errors.Is(err, service.ErrCouponNotActive):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Coupon is not active",
			})
		case errors.Is(err, service.ErrCouponExhausted):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Coupon usage limit reached",
			})
		case errors.Is(err, service.ErrCouponMinNotMet):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Order amount below coupon minimum",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to check coupon",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote": quote,
	})
}

// ListCoupons lists coupons (admin)
// GET /api/v1/admin/coupons
func (ctrl *CouponController) ListCoupons(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)
	coupons, err := ctrl.couponService.ListCoupons(limit, offset)
	if err != nil {
		log.Error("Failed to list coupons", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch coupons",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// CreateCoupon creates a coupon (admin)
// POST /api/v1/admin/coupons
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	coupon := &model.Coupon{
		Code:           req.Code,
		Description:    req.Description,
		Type:           model.CouponType(req.Type),
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		UsageLimit:     req.UsageLimit,
		StartsAt:       req.StartsAt,
		ExpiresAt:      req.ExpiresAt,
		Active:         req.Active,
	}

	if err := ctrl.couponService.CreateCoupon(coupon); err != nil {
		if errors.Is(err, service.ErrInvalidCouponDef) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid coupon definition",
			})
			return
		}
		log.Error("Failed to create coupon", err, map[string]interface{}{
			"code": req.Code,
		})
		info := apperrors.ParseError(err, "create coupon")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"coupon": coupon,
	})
}

// UpdateCoupon updates a coupon (admin)
// PUT /api/v1/admin/coupons/:id
func (ctrl *CouponController) UpdateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon ID",
		})
		return
	}

	var coupon model.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	coupon.ID = id

	if err := ctrl.couponService.UpdateCoupon(&coupon); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidCouponDef) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid coupon definition",
			})
			return
		}
		log.Error("Failed to update coupon", err, map[string]interface{}{
			"coupon_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update coupon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupon": coupon,
	})
}

// DeleteCoupon removes a coupon (admin)
// DELETE /api/v1/admin/coupons/:id
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon ID",
		})
		return
	}

	if err := ctrl.couponService.DeleteCoupon(id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete coupon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon deleted successfully",
	})
}
