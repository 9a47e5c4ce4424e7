package model

import (
	"time"

	"gorm.io/gorm"
)

type IntegrationPlatform string

const (
	PlatformAmazon      IntegrationPlatform = "amazon"
	PlatformShopify     IntegrationPlatform = "shopify"
	PlatformEbay        IntegrationPlatform = "ebay"
	PlatformWalmart     IntegrationPlatform = "walmart"
	PlatformFlipkart    IntegrationPlatform = "flipkart"
	PlatformWooCommerce IntegrationPlatform = "woocommerce"
	PlatformRazorpay    IntegrationPlatform = "razorpay"
	PlatformWhatsApp    IntegrationPlatform = "whatsapp"
)

type IntegrationStatus string

const (
	IntegrationConnected    IntegrationStatus = "connected"
	IntegrationDisconnected IntegrationStatus = "disconnected"
)

// Integration is a connection record for an external commerce platform.
// Only the record is kept; no calls are made to the platform itself.
type Integration struct {
	ID           uint                `gorm:"primarykey" json:"id"`
	Platform     IntegrationPlatform `gorm:"type:varchar(30);uniqueIndex;not null" json:"platform"`
	StoreName    string              `json:"store_name"`
	APIKeyMasked string              `json:"api_key_masked"` // only the masked form is ever stored
	Status       IntegrationStatus   `gorm:"type:varchar(20);default:'disconnected'" json:"status"`
	ConnectedAt  *time.Time          `json:"connected_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Integration) TableName() string {
	return "integrations"
}
