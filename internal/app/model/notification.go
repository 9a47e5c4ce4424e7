package model

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeOrderPlaced     NotificationType = "order_placed"
	NotificationTypeOrderStatus     NotificationType = "order_status"
	NotificationTypePaymentApproved NotificationType = "payment_approved"
	NotificationTypePaymentDeclined NotificationType = "payment_declined"
	NotificationTypeSystem          NotificationType = "system"
)

type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type    NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`
	Title   string           `gorm:"type:text;not null" json:"title"`
	Content string           `gorm:"type:text;not null" json:"content"`
	Link    string           `gorm:"type:text" json:"link"`

	IsRead bool `gorm:"default:false;index" json:"is_read"`

	RelatedOrderID *uint `gorm:"index" json:"related_order_id,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
