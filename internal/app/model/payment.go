package model

import (
	"time"

	"gorm.io/gorm"
)

type PaymentAttemptStatus string

const (
	PaymentAttemptApproved PaymentAttemptStatus = "approved"
	PaymentAttemptDeclined PaymentAttemptStatus = "declined"
	PaymentAttemptAborted  PaymentAttemptStatus = "aborted"
)

// Payment records one charge attempt against an order, approved or not.
// The payment history screen lists these per user.
type Payment struct {
	ID         uint                 `gorm:"primarykey" json:"id"`
	OrderID    uint                 `gorm:"not null;index" json:"order_id"`
	UserID     uint                 `gorm:"not null;index" json:"user_id"`
	TID        string               `gorm:"type:varchar(100);index" json:"tid,omitempty"`
	Amount     float64              `gorm:"not null" json:"amount"`
	CardLast4  string               `gorm:"type:varchar(4)" json:"card_last4"`
	Status     PaymentAttemptStatus `gorm:"type:varchar(20);not null" json:"status"`
	FailReason string               `json:"fail_reason,omitempty"`
	ApprovedAt *time.Time           `json:"approved_at,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	DeletedAt  gorm.DeletedAt       `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
