package model

import (
	"time"

	"gorm.io/gorm"
)

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`
	Description    string         `json:"description"`
	Type           CouponType     `gorm:"type:varchar(20);not null" json:"type"`
	Value          float64        `gorm:"not null" json:"value"` // percent (0-100) or fixed amount
	MinOrderAmount float64        `gorm:"default:0" json:"min_order_amount"`
	UsageLimit     int            `gorm:"default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount      int            `gorm:"default:0" json:"used_count"`
	StartsAt       time.Time      `json:"starts_at"`
	ExpiresAt      time.Time      `json:"expires_at"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// DiscountFor computes the discount this coupon grants on a subtotal.
// The discount never exceeds the subtotal itself.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	var discount float64
	switch c.Type {
	case CouponTypePercent:
		discount = subtotal * c.Value / 100
	case CouponTypeFixed:
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}
