package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByID(id uint) (*model.Notification, error)
	FindByUserID(userID uint, limit, offset int) ([]model.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	logger.Debug("Creating notification in database", map[string]interface{}{
		"user_id": notification.UserID,
		"type":    notification.Type,
	})

	if err := r.db.Create(notification).Error; err != nil {
		logger.Error("Failed to create notification in database", err, map[string]interface{}{
			"user_id": notification.UserID,
		})
		return err
	}
	return nil
}

func (r *notificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByUserID(userID uint, limit, offset int) ([]model.Notification, error) {
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var notifications []model.Notification
	if err := query.Find(&notifications).Error; err != nil {
		logger.Error("Failed to find notifications by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count unread notifications in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(id uint) error {
	if err := r.db.Model(&model.Notification{}).Where("id = ?", id).
		Update("is_read", true).Error; err != nil {
		logger.Error("Failed to mark notification read in database", err, map[string]interface{}{
			"notification_id": id,
		})
		return err
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID uint) error {
	if err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		logger.Error("Failed to mark all notifications read in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
