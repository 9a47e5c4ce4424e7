package service

import (
	"fmt"
	"testing"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNotificationServiceTest(t *testing.T) (NotificationService, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	notificationRepo := repository.NewNotificationRepository(testDB)
	notificationService := NewNotificationService(notificationRepo, nil)

	user := &model.User{
		Email:        "reader@example.com",
		PasswordHash: "hash",
		Name:         "Reader",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	return notificationService, user, testDB
}

func placedOrder(userID uint) *model.Order {
	return &model.Order{
		ID:          42,
		OrderNumber: "ORD-NOTIFY-42",
		UserID:      userID,
		TotalAmount: 99,
		Status:      model.OrderStatusPending,
	}
}

func TestNotificationService_NotifyOrderPlaced(t *testing.T) {
	notificationService, user, _ := setupNotificationServiceTest(t)

	err := notificationService.NotifyOrderPlaced(placedOrder(user.ID))
	require.NoError(t, err)

	notifications, unread, err := notificationService.GetNotifications(user.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, int64(1), unread)
	assert.Equal(t, model.NotificationTypeOrderPlaced, notifications[0].Type)
	assert.Contains(t, notifications[0].Content, "ORD-NOTIFY-42")
	assert.Equal(t, "/orders/42", notifications[0].Link)
	require.NotNil(t, notifications[0].RelatedOrderID)
	assert.Equal(t, uint(42), *notifications[0].RelatedOrderID)
}

func TestNotificationService_NotifyPaymentResult(t *testing.T) {
	notificationService, user, _ := setupNotificationServiceTest(t)

	require.NoError(t, notificationService.NotifyPaymentResult(user.ID, placedOrder(user.ID), true, ""))
	require.NoError(t, notificationService.NotifyPaymentResult(user.ID, placedOrder(user.ID), false, "card declined"))

	notifications, _, err := notificationService.GetNotifications(user.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	types := []model.NotificationType{notifications[0].Type, notifications[1].Type}
	assert.Contains(t, types, model.NotificationTypePaymentApproved)
	assert.Contains(t, types, model.NotificationTypePaymentDeclined)
}

func TestNotificationService_GetNotifications_Pagination(t *testing.T) {
	notificationService, user, testDB := setupNotificationServiceTest(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, testDB.Create(&model.Notification{
			UserID:  user.ID,
			Type:    model.NotificationTypeSystem,
			Title:   "System",
			Content: fmt.Sprintf("message %d", i),
		}).Error)
	}

	notifications, unread, err := notificationService.GetNotifications(user.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, int64(5), unread)

	notifications, _, err = notificationService.GetNotifications(user.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)

	// Out-of-range page values are clamped instead of erroring
	notifications, _, err = notificationService.GetNotifications(user.ID, 0, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, notifications)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	notificationService, user, testDB := setupNotificationServiceTest(t)

	notification := &model.Notification{
		UserID:  user.ID,
		Type:    model.NotificationTypeSystem,
		Title:   "System",
		Content: "hello",
	}
	require.NoError(t, testDB.Create(notification).Error)

	require.NoError(t, notificationService.MarkAsRead(notification.ID, user.ID))

	unread, err := notificationService.GetUnreadCount(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestNotificationService_MarkAsRead_NotOwned(t *testing.T) {
	notificationService, user, testDB := setupNotificationServiceTest(t)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other"}
	testDB.Create(other)

	notification := &model.Notification{
		UserID:  other.ID,
		Type:    model.NotificationTypeSystem,
		Title:   "System",
		Content: "private",
	}
	require.NoError(t, testDB.Create(notification).Error)

	err := notificationService.MarkAsRead(notification.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	notificationService, user, testDB := setupNotificationServiceTest(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, testDB.Create(&model.Notification{
			UserID:  user.ID,
			Type:    model.NotificationTypeSystem,
			Title:   "System",
			Content: "bulk",
		}).Error)
	}

	require.NoError(t, notificationService.MarkAllAsRead(user.ID))

	unread, err := notificationService.GetUnreadCount(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
