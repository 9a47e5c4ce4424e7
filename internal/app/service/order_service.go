package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"github.com/shopverse/shopverse-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidShipping      = errors.New("invalid shipping details")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrOrderNotCancellable  = errors.New("order can no longer be cancelled")
)

// ShippingDetails is the delivery destination captured at checkout.
type ShippingDetails struct {
	Name    string
	Phone   string
	Address string
}

type OrderService interface {
	CreateOrderFromCart(userID uint, shipping ShippingDetails, couponCode string) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	ListOrders(filter repository.OrderFilter) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error
	CancelOrder(userID, orderID uint) error
	// CancelStalePending cancels unpaid pending orders older than the cutoff
	// and restocks their items. Returns how many orders were cancelled.
	CancelStalePending(cutoff time.Time) (int, error)
}

type orderService struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	couponRepo repository.CouponRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	couponRepo repository.CouponRepository,
) OrderService {
	return &orderService{
		db:         db,
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		couponRepo: couponRepo,
	}
}

func (s *orderService) CreateOrderFromCart(userID uint, shipping ShippingDetails, couponCode string) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":     userID,
		"coupon_code": couponCode,
	})

	if shipping.Name == "" || shipping.Address == "" {
		logger.Warn("Order rejected: incomplete shipping details", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrInvalidShipping
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	var coupon *model.Coupon
	if couponCode != "" {
		c, err := s.validateCoupon(couponCode)
		if err != nil {
			return nil, err
		}
		coupon = c
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		subtotal   float64
		orderItems []model.OrderItem
	)

	for _, cartItem := range cartItems {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during order creation", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during order creation", err, map[string]interface{}{
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}

		if product.StockQuantity < cartItem.Quantity {
			tx.Rollback()
			logger.Warn("Order creation failed: insufficient product stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
				"requested":  cartItem.Quantity,
				"available":  product.StockQuantity,
			})
			return nil, ErrInsufficientStock
		}

		var variant *model.ProductVariant
		if cartItem.ProductVariantID != nil {
			var v model.ProductVariant
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&v, *cartItem.ProductVariantID).Error; err != nil {
				tx.Rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrInvalidProductVariant
				}
				logger.Error("Failed to fetch variant during order creation", err, map[string]interface{}{
					"variant_id": *cartItem.ProductVariantID,
				})
				return nil, err
			}
			if v.ProductID != cartItem.ProductID {
				tx.Rollback()
				logger.Warn("Variant mismatch during order creation", map[string]interface{}{
					"product_id": cartItem.ProductID,
					"variant_id": *cartItem.ProductVariantID,
				})
				return nil, ErrInvalidProductVariant
			}
			if v.StockQuantity < cartItem.Quantity {
				tx.Rollback()
				logger.Warn("Order creation failed: insufficient variant stock", map[string]interface{}{
					"variant_id": v.ID,
					"requested":  cartItem.Quantity,
					"available":  v.StockQuantity,
				})
				return nil, ErrInsufficientStock
			}
			tmp := v
			variant = &tmp
		}

		unitPrice := product.Price
		var variantSnapshot string
		if variant != nil {
			unitPrice += variant.PriceModifier
			variantSnapshot = fmt.Sprintf("%s: %s", variant.Name, variant.Value)
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID:        cartItem.ProductID,
			ProductVariantID: cartItem.ProductVariantID,
			Quantity:         cartItem.Quantity,
			Price:            unitPrice,
			VariantSnapshot:  variantSnapshot,
		})
		subtotal += unitPrice * float64(cartItem.Quantity)

		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", cartItem.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to decrement product stock", err, map[string]interface{}{
				"product_id": product.ID,
			})
			return nil, err
		}

		if variant != nil {
			if err := tx.Model(&model.ProductVariant{}).
				Where("id = ?", variant.ID).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", cartItem.Quantity)).Error; err != nil {
				tx.Rollback()
				logger.Error("Failed to decrement variant stock", err, map[string]interface{}{
					"variant_id": variant.ID,
				})
				return nil, err
			}
		}
	}

	var discount float64
	if coupon != nil {
		if subtotal < coupon.MinOrderAmount {
			tx.Rollback()
			logger.Warn("Coupon rejected: subtotal below minimum", map[string]interface{}{
				"coupon_code": coupon.Code,
				"subtotal":    subtotal,
				"minimum":     coupon.MinOrderAmount,
			})
			return nil, ErrCouponMinNotMet
		}
		discount = coupon.DiscountFor(subtotal)
	}

	order := &model.Order{
		OrderNumber:   util.GenerateOrderNumber(),
		UserID:        userID,
		TotalAmount:   subtotal - discount,
		DiscountTotal: discount,
		CouponCode:    couponCode,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		ShippingName:  shipping.Name,
		ShippingPhone: shipping.Phone,
		ShippingAddr:  shipping.Address,
		OrderItems:    orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"total_amount": order.TotalAmount,
		})
		return nil, err
	}

	if coupon != nil {
		if err := tx.Model(&model.Coupon{}).
			Where("id = ?", coupon.ID).
			Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to record coupon usage", err, map[string]interface{}{
				"coupon_id": coupon.ID,
			})
			return nil, err
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"discount":     discount,
		"item_count":   len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

// validateCoupon checks redeemability independent of the order amount; the
// minimum-amount check happens once the subtotal is known.
func (s *orderService) validateCoupon(code string) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Coupon not found", map[string]interface{}{
				"coupon_code": code,
			})
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !coupon.Active || now.Before(coupon.StartsAt) || now.After(coupon.ExpiresAt) {
		logger.Warn("Coupon not redeemable", map[string]interface{}{
			"coupon_code": code,
			"active":      coupon.Active,
			"expires_at":  coupon.ExpiresAt,
		})
		return nil, ErrCouponNotActive
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		logger.Warn("Coupon exhausted", map[string]interface{}{
			"coupon_code": code,
			"usage_limit": coupon.UsageLimit,
		})
		return nil, ErrCouponExhausted
	}
	return coupon, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return nil, err
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if !order.Status.CanTransitionTo(status) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return ErrInvalidTransition
	}

	if status == model.OrderStatusCancelled {
		return s.cancelAndRestock(order)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       status,
	})
	return nil
}

func (s *orderService) UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error {
	logger.Info("Updating payment status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	if err := s.orderRepo.UpdatePaymentStatus(orderID, status); err != nil {
		logger.Error("Failed to update payment status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	return nil
}

func (s *orderService) CancelOrder(userID, orderID uint) error {
	order, err := s.GetOrderByID(userID, orderID)
	if err != nil {
		return err
	}

	if !order.Status.CanTransitionTo(model.OrderStatusCancelled) {
		logger.Warn("Order cannot be cancelled", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return ErrOrderNotCancellable
	}

	return s.cancelAndRestock(order)
}

// cancelAndRestock flips the order to cancelled and returns its items to
// stock in one transaction. OrderItems must be preloaded.
func (s *orderService) cancelAndRestock(order *model.Order) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, item := range order.OrderItems {
		if err := tx.Model(&model.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to restock product on cancel", err, map[string]interface{}{
				"order_id":   order.ID,
				"product_id": item.ProductID,
			})
			return err
		}
		if item.ProductVariantID != nil {
			if err := tx.Model(&model.ProductVariant{}).
				Where("id = ?", *item.ProductVariantID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				tx.Rollback()
				logger.Error("Failed to restock variant on cancel", err, map[string]interface{}{
					"order_id":   order.ID,
					"variant_id": *item.ProductVariantID,
				})
				return err
			}
		}
	}

	if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).
		Update("status", model.OrderStatusCancelled).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to mark order cancelled", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order cancellation", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}

	logger.Info("Order cancelled and restocked", map[string]interface{}{
		"order_id":   order.ID,
		"item_count": len(order.OrderItems),
	})
	return nil
}

func (s *orderService) CancelStalePending(cutoff time.Time) (int, error) {
	orders, err := s.orderRepo.FindStalePending(cutoff)
	if err != nil {
		logger.Error("Failed to find stale pending orders", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}

	cancelled := 0
	for i := range orders {
		if err := s.cancelAndRestock(&orders[i]); err != nil {
			logger.Error("Failed to cancel stale order", err, map[string]interface{}{
				"order_id": orders[i].ID,
			})
			continue
		}
		cancelled++
	}

	if cancelled > 0 {
		logger.Info("Stale pending orders cancelled", map[string]interface{}{
			"count":  cancelled,
			"cutoff": cutoff,
		})
	}
	return cancelled, nil
}
