package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/shopverse/shopverse-backend/pkg/payment/mockpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const declinedTestCard = "4000000000000002"

func validTestCard() mockpay.Card {
	return mockpay.Card{
		Number:      "4242 4242 4242 4242",
		HolderName:  "Test Buyer",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
		CVV:         "123",
	}
}

func setupPaymentServiceTest(t *testing.T) (PaymentService, *model.User, *model.Order, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	gateway, err := mockpay.NewClient(mockpay.Config{
		MerchantID:      "TEST-MERCHANT",
		ProcessingDelay: 10 * time.Millisecond,
		DeclinedCards:   []string{declinedTestCard},
	})
	require.NoError(t, err)

	paymentRepo := repository.NewPaymentRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)
	notifier := NewNotificationService(notificationRepo, nil)
	paymentService := NewPaymentService(gateway, paymentRepo, orderRepo, notifier)

	user := &model.User{
		Email:        "payer@example.com",
		PasswordHash: "hash",
		Name:         "Payer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	order := &model.Order{
		OrderNumber:   "ORD-TEST-0001",
		UserID:        user.ID,
		TotalAmount:   150,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		ShippingName:  "Payer",
		ShippingAddr:  "1 Commerce St",
	}
	testDB.Create(order)

	return paymentService, user, order, testDB
}

func TestPaymentService_Checkout_Approved(t *testing.T) {
	paymentService, user, order, testDB := setupPaymentServiceTest(t)

	result, err := paymentService.Checkout(context.Background(), user.ID, order.ID, validTestCard())
	require.NoError(t, err)
	assert.Equal(t, model.PaymentAttemptApproved, result.Payment.Status)
	assert.NotEmpty(t, result.Payment.TID)
	assert.Equal(t, "4242", result.Payment.CardLast4)
	assert.Equal(t, 150.0, result.Payment.Amount)
	assert.NotNil(t, result.Payment.ApprovedAt)

	// Payment moves the order into fulfillment
	var refreshed model.Order
	require.NoError(t, testDB.First(&refreshed, order.ID).Error)
	assert.Equal(t, model.PaymentStatusCompleted, refreshed.PaymentStatus)
	assert.Equal(t, model.OrderStatusProcessing, refreshed.Status)
}

func TestPaymentService_Checkout_ShortCardNumber(t *testing.T) {
	paymentService, user, order, testDB := setupPaymentServiceTest(t)

	card := validTestCard()
	card.Number = "4242 4242 4242"

	_, err := paymentService.Checkout(context.Background(), user.ID, order.ID, card)
	assert.ErrorIs(t, err, ErrPaymentCardInvalid)

	// The order is never paid
	var refreshed model.Order
	require.NoError(t, testDB.First(&refreshed, order.ID).Error)
	assert.Equal(t, model.PaymentStatusPending, refreshed.PaymentStatus)
	assert.Equal(t, model.OrderStatusPending, refreshed.Status)
}

func TestPaymentService_Checkout_InvalidCVVAndExpiry(t *testing.T) {
	paymentService, user, order, _ := setupPaymentServiceTest(t)

	card := validTestCard()
	card.CVV = "12"
	_, err := paymentService.Checkout(context.Background(), user.ID, order.ID, card)
	assert.ErrorIs(t, err, ErrPaymentCardInvalid)

	card = validTestCard()
	card.ExpiryYear = time.Now().Year() - 1
	_, err = paymentService.Checkout(context.Background(), user.ID, order.ID, card)
	assert.ErrorIs(t, err, ErrPaymentCardInvalid)
}

func TestPaymentService_Checkout_Declined(t *testing.T) {
	paymentService, user, order, testDB := setupPaymentServiceTest(t)

	card := validTestCard()
	card.Number = declinedTestCard

	result, err := paymentService.Checkout(context.Background(), user.ID, order.ID, card)
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	require.NotNil(t, result)
	assert.Equal(t, model.PaymentAttemptDeclined, result.Payment.Status)
	assert.NotEmpty(t, result.Payment.FailReason)

	// A declined charge marks the payment failed but leaves the order pending
	var refreshed model.Order
	require.NoError(t, testDB.First(&refreshed, order.ID).Error)
	assert.Equal(t, model.PaymentStatusFailed, refreshed.PaymentStatus)
	assert.Equal(t, model.OrderStatusPending, refreshed.Status)
}

func TestPaymentService_Checkout_AbortedMidProcessing(t *testing.T) {
	paymentService, user, order, testDB := setupPaymentServiceTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Millisecond)
	defer cancel()

	result, err := paymentService.Checkout(ctx, user.ID, order.ID, validTestCard())
	assert.ErrorIs(t, err, ErrPaymentAborted)
	require.NotNil(t, result)
	assert.Equal(t, model.PaymentAttemptAborted, result.Payment.Status)

	// An aborted attempt keeps the order payable
	var refreshed model.Order
	require.NoError(t, testDB.First(&refreshed, order.ID).Error)
	assert.Equal(t, model.PaymentStatusPending, refreshed.PaymentStatus)
	assert.Equal(t, model.OrderStatusPending, refreshed.Status)

	// A retry with the same card succeeds
	_, err = paymentService.Checkout(context.Background(), user.ID, order.ID, validTestCard())
	assert.NoError(t, err)
}

func TestPaymentService_Checkout_AlreadyPaid(t *testing.T) {
	paymentService, user, order, _ := setupPaymentServiceTest(t)

	_, err := paymentService.Checkout(context.Background(), user.ID, order.ID, validTestCard())
	require.NoError(t, err)

	_, err = paymentService.Checkout(context.Background(), user.ID, order.ID, validTestCard())
	assert.ErrorIs(t, err, ErrOrderAlreadyPaid)
}

func TestPaymentService_Checkout_CancelledOrderNotPayable(t *testing.T) {
	paymentService, user, order, testDB := setupPaymentServiceTest(t)

	require.NoError(t, testDB.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("status", model.OrderStatusCancelled).Error)

	_, err := paymentService.Checkout(context.Background(), user.ID, order.ID, validTestCard())
	assert.ErrorIs(t, err, ErrOrderNotPayable)
}

func TestPaymentService_Checkout_OwnershipMismatch(t *testing.T) {
	paymentService, _, order, testDB := setupPaymentServiceTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other"}
	testDB.Create(other)

	_, err := paymentService.Checkout(context.Background(), other.ID, order.ID, validTestCard())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_GetPaymentHistory(t *testing.T) {
	paymentService, user, order, _ := setupPaymentServiceTest(t)

	card := validTestCard()
	card.Number = declinedTestCard
	_, _ = paymentService.Checkout(context.Background(), user.ID, order.ID, card)
	_, err := paymentService.Checkout(context.Background(), user.ID, order.ID, validTestCard())
	require.NoError(t, err)

	payments, err := paymentService.GetPaymentHistory(user.ID)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestPaymentService_GetOrderPayments_Ownership(t *testing.T) {
	paymentService, user, order, testDB := setupPaymentServiceTest(t)

	_, err := paymentService.Checkout(context.Background(), user.ID, order.ID, validTestCard())
	require.NoError(t, err)

	payments, err := paymentService.GetOrderPayments(user.ID, order.ID)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)

	other := &model.User{Email: "peek@example.com", PasswordHash: "hash", Name: "Peek"}
	testDB.Create(other)
	_, err = paymentService.GetOrderPayments(other.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
