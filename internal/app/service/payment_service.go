package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"github.com/shopverse/shopverse-backend/pkg/payment/mockpay"
	"gorm.io/gorm"
)

var (
	ErrOrderAlreadyPaid   = errors.New("order is already paid")
	ErrOrderNotPayable    = errors.New("order cannot be paid in its current state")
	ErrPaymentCardInvalid = errors.New("invalid card details")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrPaymentAborted     = errors.New("payment aborted")
)

// PaymentResult is what the checkout screen renders after a charge attempt.
type PaymentResult struct {
	Payment *model.Payment `json:"payment"`
	Order   *model.Order   `json:"order"`
}

type PaymentService interface {
	// Checkout charges the gateway for a pending order. A declined or
	// invalid card never pays the order; only an approved charge moves it
	// to processing.
	Checkout(ctx context.Context, userID, orderID uint, card mockpay.Card) (*PaymentResult, error)
	GetPaymentHistory(userID uint) ([]model.Payment, error)
	GetOrderPayments(userID, orderID uint) ([]model.Payment, error)
}

type paymentService struct {
	gateway     *mockpay.Client
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	notifier    NotificationService
}

func NewPaymentService(
	gateway *mockpay.Client,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	notifier NotificationService,
) PaymentService {
	return &paymentService{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
	}
}

func cardValidationFailed(err error) bool {
	return errors.Is(err, mockpay.ErrInvalidCardNumber) ||
		errors.Is(err, mockpay.ErrInvalidCVV) ||
		errors.Is(err, mockpay.ErrInvalidExpiry) ||
		errors.Is(err, mockpay.ErrMissingHolderName) ||
		errors.Is(err, mockpay.ErrInvalidRequest) ||
		errors.Is(err, mockpay.ErrInvalidAmount)
}

func (s *paymentService) Checkout(ctx context.Context, userID, orderID uint, card mockpay.Card) (*PaymentResult, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for checkout", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Checkout denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	if order.PaymentStatus == model.PaymentStatusCompleted {
		return nil, ErrOrderAlreadyPaid
	}
	if order.Status != model.OrderStatusPending {
		logger.Warn("Checkout rejected: order not pending", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return nil, ErrOrderNotPayable
	}

	// Validate the card up front so bad input fails fast, before the
	// gateway's processing delay.
	if err := s.gateway.ValidateCard(card, time.Now()); err != nil {
		logger.Warn("Checkout rejected: card validation failed", map[string]interface{}{
			"order_id": orderID,
			"reason":   err.Error(),
		})
		return nil, ErrPaymentCardInvalid
	}

	resp, err := s.gateway.Charge(ctx, mockpay.ChargeRequest{
		OrderNumber: order.OrderNumber,
		Amount:      order.TotalAmount,
		Card:        card,
	})
	if err != nil {
		return s.recordFailure(userID, order, card, err)
	}

	approvedAt := resp.ApprovedAt
	payment := &model.Payment{
		OrderID:    order.ID,
		UserID:     userID,
		TID:        resp.TID,
		Amount:     resp.Amount,
		CardLast4:  resp.CardLast4,
		Status:     model.PaymentAttemptApproved,
		ApprovedAt: &approvedAt,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		logger.Error("Failed to record approved payment", err, map[string]interface{}{
			"order_id": order.ID,
			"tid":      resp.TID,
		})
		return nil, err
	}

	if err := s.orderRepo.UpdatePaymentStatus(order.ID, model.PaymentStatusCompleted); err != nil {
		logger.Error("Failed to mark order paid", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(order.ID, model.OrderStatusProcessing); err != nil {
		logger.Error("Failed to advance paid order", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}
	order.PaymentStatus = model.PaymentStatusCompleted
	order.Status = model.OrderStatusProcessing

	if s.notifier != nil {
		if err := s.notifier.NotifyPaymentResult(userID, order, true, ""); err != nil {
			logger.Warn("Failed to create payment notification", map[string]interface{}{
				"order_id": order.ID,
			})
		}
	}

	logger.Info("Checkout approved", map[string]interface{}{
		"order_id":   order.ID,
		"tid":        resp.TID,
		"amount":     resp.Amount,
		"card_last4": resp.CardLast4,
	})

	return &PaymentResult{Payment: payment, Order: order}, nil
}

// recordFailure writes the failed attempt and maps the gateway error. Aborted
// charges (caller gave up mid-delay) are recorded but the order stays payable.
func (s *paymentService) recordFailure(userID uint, order *model.Order, card mockpay.Card, chargeErr error) (*PaymentResult, error) {
	status := model.PaymentAttemptDeclined
	outErr := ErrPaymentDeclined
	switch {
	case errors.Is(chargeErr, mockpay.ErrProcessingAborted):
		status = model.PaymentAttemptAborted
		outErr = ErrPaymentAborted
	case cardValidationFailed(chargeErr):
		outErr = ErrPaymentCardInvalid
	}

	last4 := ""
	if number := mockpay.NormalizeCardNumber(card.Number); len(number) >= 4 {
		last4 = number[len(number)-4:]
	}

	payment := &model.Payment{
		OrderID:    order.ID,
		UserID:     userID,
		Amount:     order.TotalAmount,
		CardLast4:  last4,
		Status:     status,
		FailReason: chargeErr.Error(),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		logger.Error("Failed to record failed payment", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}

	if status == model.PaymentAttemptDeclined {
		if err := s.orderRepo.UpdatePaymentStatus(order.ID, model.PaymentStatusFailed); err != nil {
			logger.Error("Failed to mark payment failed", err, map[string]interface{}{
				"order_id": order.ID,
			})
		}
		if s.notifier != nil {
			if err := s.notifier.NotifyPaymentResult(userID, order, false, chargeErr.Error()); err != nil {
				logger.Warn("Failed to create decline notification", map[string]interface{}{
					"order_id": order.ID,
				})
			}
		}
	}

	logger.Warn("Checkout failed", map[string]interface{}{
		"order_id": order.ID,
		"status":   status,
		"reason":   chargeErr.Error(),
	})

	return &PaymentResult{Payment: payment, Order: order}, outErr
}

func (s *paymentService) GetPaymentHistory(userID uint) ([]model.Payment, error) {
	logger.Debug("Fetching payment history", map[string]interface{}{
		"user_id": userID,
	})

	payments, err := s.paymentRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch payment history", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return payments, nil
}

func (s *paymentService) GetOrderPayments(userID, orderID uint) ([]model.Payment, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	return s.paymentRepo.FindByOrderID(orderID)
}
