package service

import (
	"testing"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	orderService := NewOrderService(testDB, orderRepo, cartRepo, couponRepo)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "Buyer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:          "Trail Shoes",
		Price:         100,
		Category:      model.CategorySports,
		Subcategory:   "running",
		StockQuantity: 10,
	}
	testDB.Create(product)

	return orderService, user, product, testDB
}

func addCartItem(t *testing.T, testDB *gorm.DB, userID, productID uint, variantID *uint, qty int) {
	item := &model.CartItem{
		UserID:           userID,
		ProductID:        productID,
		ProductVariantID: variantID,
		Quantity:         qty,
	}
	require.NoError(t, testDB.Create(item).Error)
}

var testShipping = ShippingDetails{
	Name:    "Buyer",
	Phone:   "555-0100",
	Address: "1 Commerce St, Springfield",
}

func TestOrderService_CreateOrderFromCart_Success(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 2)

	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 200.0, order.TotalAmount)
	assert.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 100.0, order.OrderItems[0].Price)

	// Stock is reserved immediately
	var refreshed model.Product
	require.NoError(t, testDB.First(&refreshed, product.ID).Error)
	assert.Equal(t, 8, refreshed.StockQuantity)

	// Cart is emptied
	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestOrderService_CreateOrderFromCart_EmptyCart(t *testing.T) {
	orderService, user, _, _ := setupOrderServiceTest(t)

	_, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrderFromCart_MissingShipping(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)

	_, err := orderService.CreateOrderFromCart(user.ID, ShippingDetails{Name: "Buyer"}, "")
	assert.ErrorIs(t, err, ErrInvalidShipping)
}

func TestOrderService_CreateOrderFromCart_InsufficientStock(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 11)

	_, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was reserved
	var refreshed model.Product
	require.NoError(t, testDB.First(&refreshed, product.ID).Error)
	assert.Equal(t, 10, refreshed.StockQuantity)
}

func TestOrderService_CreateOrderFromCart_VariantSnapshotAndStock(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)

	variant := &model.ProductVariant{
		ProductID:     product.ID,
		Name:          "size",
		Value:         "XL",
		PriceModifier: 10,
		StockQuantity: 4,
	}
	require.NoError(t, testDB.Create(variant).Error)
	addCartItem(t, testDB, user.ID, product.ID, &variant.ID, 2)

	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 110.0, order.OrderItems[0].Price)
	assert.Equal(t, "size: XL", order.OrderItems[0].VariantSnapshot)
	assert.Equal(t, 220.0, order.TotalAmount)

	var refreshedVariant model.ProductVariant
	require.NoError(t, testDB.First(&refreshedVariant, variant.ID).Error)
	assert.Equal(t, 2, refreshedVariant.StockQuantity)
}

func TestOrderService_CreateOrderFromCart_PercentCoupon(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 2)

	coupon := &model.Coupon{
		Code:      "TEN",
		Type:      model.CouponTypePercent,
		Value:     10,
		StartsAt:  time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour),
		Active:    true,
	}
	require.NoError(t, testDB.Create(coupon).Error)

	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "TEN")
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.DiscountTotal)
	assert.Equal(t, 180.0, order.TotalAmount)
	assert.Equal(t, "TEN", order.CouponCode)

	// Redemption is recorded
	var refreshed model.Coupon
	require.NoError(t, testDB.First(&refreshed, coupon.ID).Error)
	assert.Equal(t, 1, refreshed.UsedCount)
}

func TestOrderService_CreateOrderFromCart_CouponMinimumNotMet(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)

	coupon := &model.Coupon{
		Code:           "BIGSPEND",
		Type:           model.CouponTypeFixed,
		Value:          50,
		MinOrderAmount: 500,
		StartsAt:       time.Now().Add(-time.Hour),
		ExpiresAt:      time.Now().Add(time.Hour),
		Active:         true,
	}
	require.NoError(t, testDB.Create(coupon).Error)

	_, err := orderService.CreateOrderFromCart(user.ID, testShipping, "BIGSPEND")
	assert.ErrorIs(t, err, ErrCouponMinNotMet)

	// The failed attempt must not consume stock or the cart
	var refreshed model.Product
	require.NoError(t, testDB.First(&refreshed, product.ID).Error)
	assert.Equal(t, 10, refreshed.StockQuantity)

	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrderService_CreateOrderFromCart_ExpiredCoupon(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)

	coupon := &model.Coupon{
		Code:      "EXPIRED",
		Type:      model.CouponTypePercent,
		Value:     10,
		StartsAt:  time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
		Active:    true,
	}
	require.NoError(t, testDB.Create(coupon).Error)

	_, err := orderService.CreateOrderFromCart(user.ID, testShipping, "EXPIRED")
	assert.ErrorIs(t, err, ErrCouponNotActive)
}

func TestOrderService_GetOrderByID_Ownership(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)

	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)

	found, err := orderService.GetOrderByID(user.ID, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	// Another user cannot see the order
	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other"}
	testDB.Create(other)
	_, err = orderService.GetOrderByID(other.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateOrderStatus_LegalTransition(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)
	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)

	err = orderService.UpdateOrderStatus(order.ID, model.OrderStatusProcessing)
	assert.NoError(t, err)

	refreshed, _ := orderService.GetOrderByID(user.ID, order.ID)
	assert.Equal(t, model.OrderStatusProcessing, refreshed.Status)
}

func TestOrderService_UpdateOrderStatus_IllegalTransition(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)
	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)

	// pending cannot jump straight to shipped
	err = orderService.UpdateOrderStatus(order.ID, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	refreshed, _ := orderService.GetOrderByID(user.ID, order.ID)
	assert.Equal(t, model.OrderStatusPending, refreshed.Status)
}

func TestOrderService_CancelOrder_Restocks(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 3)
	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)

	var afterOrder model.Product
	require.NoError(t, testDB.First(&afterOrder, product.ID).Error)
	require.Equal(t, 7, afterOrder.StockQuantity)

	err = orderService.CancelOrder(user.ID, order.ID)
	assert.NoError(t, err)

	refreshed, _ := orderService.GetOrderByID(user.ID, order.ID)
	assert.Equal(t, model.OrderStatusCancelled, refreshed.Status)

	var restocked model.Product
	require.NoError(t, testDB.First(&restocked, product.ID).Error)
	assert.Equal(t, 10, restocked.StockQuantity)
}

func TestOrderService_CancelOrder_TerminalOrder(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)
	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)

	require.NoError(t, orderService.UpdateOrderStatus(order.ID, model.OrderStatusProcessing))
	require.NoError(t, orderService.UpdateOrderStatus(order.ID, model.OrderStatusShipped))
	require.NoError(t, orderService.UpdateOrderStatus(order.ID, model.OrderStatusDelivered))

	err = orderService.CancelOrder(user.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestOrderService_CancelStalePending(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 2)
	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)

	// Age the order past the cutoff
	require.NoError(t, testDB.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("created_at", time.Now().Add(-2*time.Hour)).Error)

	cancelled, err := orderService.CancelStalePending(time.Now().Add(-time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 1, cancelled)

	refreshed, _ := orderService.GetOrderByID(user.ID, order.ID)
	assert.Equal(t, model.OrderStatusCancelled, refreshed.Status)

	var restocked model.Product
	require.NoError(t, testDB.First(&restocked, product.ID).Error)
	assert.Equal(t, 10, restocked.StockQuantity)
}

func TestOrderService_CancelStalePending_SkipsRecentOrders(t *testing.T) {
	orderService, user, product, testDB := setupOrderServiceTest(t)
	addCartItem(t, testDB, user.ID, product.ID, nil, 1)
	order, err := orderService.CreateOrderFromCart(user.ID, testShipping, "")
	require.NoError(t, err)

	cancelled, err := orderService.CancelStalePending(time.Now().Add(-time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, 0, cancelled)

	refreshed, _ := orderService.GetOrderByID(user.ID, order.ID)
	assert.Equal(t, model.OrderStatusPending, refreshed.Status)
}
