package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByUserID(userID uint) ([]model.Payment, error)
	FindByOrderID(orderID uint) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	logger.Debug("Recording payment attempt in database", map[string]interface{}{
		"order_id": payment.OrderID,
		"user_id":  payment.UserID,
		"status":   payment.Status,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to record payment attempt in database", err, map[string]interface{}{
			"order_id": payment.OrderID,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) FindByUserID(userID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("user_id = ?", userID).
		Preload("Order").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to find payments by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByOrderID(orderID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to find payments by order ID in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return payments, nil
}
