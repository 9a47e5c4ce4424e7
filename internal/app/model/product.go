package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryFashion     ProductCategory = "fashion"
	CategoryElectronics ProductCategory = "electronics"
	CategoryBeauty      ProductCategory = "beauty"
	CategoryGrocery     ProductCategory = "grocery"
	CategorySports      ProductCategory = "sports"
)

type Product struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Brand         string          `gorm:"index" json:"brand"`
	Price         float64         `gorm:"not null" json:"price"`
	OriginalPrice float64         `json:"original_price,omitempty"` // pre-discount price, 0 when never discounted
	Discount      int             `gorm:"default:0" json:"discount"` // percent off
	Rating        float64         `gorm:"default:0" json:"rating"`   // 0-5 average
	ReviewCount   int             `gorm:"default:0" json:"review_count"`
	Category      ProductCategory `gorm:"type:varchar(50);index" json:"category"`
	Subcategory   string          `gorm:"index" json:"subcategory"` // free-text tag, e.g. "mens-shoes"
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	ImageURLs     pq.StringArray  `gorm:"type:text[];default:'{}'" json:"image_urls"`
	ViewCount     int             `gorm:"default:0" json:"view_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Variants   []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	OrderItems []OrderItem      `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem       `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ProductVariant is a named product option (size, color) with its own stock
// and an optional price modifier on top of the base price.
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"index;not null" json:"product_id"`
	Name          string         `gorm:"not null" json:"name"`  // option group, e.g. "size"
	Value         string         `gorm:"not null" json:"value"` // option value, e.g. "XL"
	PriceModifier float64        `gorm:"default:0" json:"price_modifier"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	IsDefault     bool           `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
