package service

import (
	"errors"
	"fmt"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/websocket"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	GetNotifications(userID uint, page, pageSize int) ([]model.Notification, int64, error)
	GetUnreadCount(userID uint) (int64, error)
	MarkAsRead(notificationID, userID uint) error
	MarkAllAsRead(userID uint) error

	NotifyOrderPlaced(order *model.Order) error
	NotifyOrderStatus(order *model.Order) error
	NotifyPaymentResult(userID uint, order *model.Order, approved bool, reason string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	hub  *websocket.Hub
}

func NewNotificationService(repo repository.NotificationRepository, hub *websocket.Hub) NotificationService {
	return &notificationService{
		repo: repo,
		hub:  hub,
	}
}

func (s *notificationService) GetNotifications(userID uint, page, pageSize int) ([]model.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	notifications, err := s.repo.FindByUserID(userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}

	return notifications, unread, nil
}

func (s *notificationService) GetUnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *notificationService) MarkAsRead(notificationID, userID uint) error {
	notification, err := s.repo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.UserID != userID {
		logger.Warn("Notification access denied: ownership mismatch", map[string]interface{}{
			"user_id":         userID,
			"notification_id": notificationID,
		})
		return ErrNotificationNotFound
	}

	return s.repo.MarkRead(notificationID)
}

func (s *notificationService) MarkAllAsRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}

// create persists the notification and pushes it to any live sessions.
// Push failures are logged and swallowed; the row is the source of truth.
func (s *notificationService) create(notification *model.Notification) error {
	if err := s.repo.Create(notification); err != nil {
		return err
	}

	if s.hub != nil {
		if err := s.hub.SendToUser(notification.UserID, notification); err != nil {
			logger.Warn("Failed to push notification", map[string]interface{}{
				"notification_id": notification.ID,
				"user_id":         notification.UserID,
			})
		}
	}
	return nil
}

func (s *notificationService) NotifyOrderPlaced(order *model.Order) error {
	return s.create(&model.Notification{
		UserID:         order.UserID,
		Type:           model.NotificationTypeOrderPlaced,
		Title:          "Order placed",
		Content:        fmt.Sprintf("Your order %s has been placed.", order.OrderNumber),
		Link:           fmt.Sprintf("/orders/%d", order.ID),
		RelatedOrderID: &order.ID,
	})
}

func (s *notificationService) NotifyOrderStatus(order *model.Order) error {
	return s.create(&model.Notification{
		UserID:         order.UserID,
		Type:           model.NotificationTypeOrderStatus,
		Title:          "Order update",
		Content:        fmt.Sprintf("Order %s is now %s.", order.OrderNumber, order.Status),
		Link:           fmt.Sprintf("/orders/%d", order.ID),
		RelatedOrderID: &order.ID,
	})
}

func (s *notificationService) NotifyPaymentResult(userID uint, order *model.Order, approved bool, reason string) error {
	if approved {
		return s.create(&model.Notification{
			UserID:         userID,
			Type:           model.NotificationTypePaymentApproved,
			Title:          "Payment approved",
			Content:        fmt.Sprintf("Payment for order %s was approved.", order.OrderNumber),
			Link:           fmt.Sprintf("/orders/%d", order.ID),
			RelatedOrderID: &order.ID,
		})
	}

	content := fmt.Sprintf("Payment for order %s was declined.", order.OrderNumber)
	if reason != "" {
		content = fmt.Sprintf("Payment for order %s was declined: %s.", order.OrderNumber, reason)
	}
	return s.create(&model.Notification{
		UserID:         userID,
		Type:           model.NotificationTypePaymentDeclined,
		Title:          "Payment declined",
		Content:        content,
		Link:           fmt.Sprintf("/orders/%d", order.ID),
		RelatedOrderID: &order.ID,
	})
}
