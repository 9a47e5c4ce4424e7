package model

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	ProductVariantID *uint          `gorm:"index" json:"product_variant_id,omitempty"`
	Quantity         int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	Product        Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// UnitPrice is the variant-adjusted price for one unit of this line item.
// Product (and ProductVariant when set) must be preloaded.
func (i *CartItem) UnitPrice() float64 {
	price := i.Product.Price
	if i.ProductVariant != nil {
		price += i.ProductVariant.PriceModifier
	}
	return price
}

// GuestCart is an anonymous shopper's cart, serialized to Redis with a TTL.
// It mirrors the durable cart closely enough to merge into it at login.
type GuestCart struct {
	SessionID string          `json:"session_id"`
	Items     []GuestCartItem `json:"items"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type GuestCartItem struct {
	ProductID        uint  `json:"product_id"`
	ProductVariantID *uint `json:"product_variant_id,omitempty"`
	Quantity         int   `json:"quantity"`
}
