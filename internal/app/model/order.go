package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// orderTransitions is the allowed status graph: pending -> processing ->
// shipped -> delivered, with cancelled reachable from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	OrderNumber   string         `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	TotalAmount   float64        `gorm:"not null" json:"total_amount"`
	DiscountTotal float64        `gorm:"default:0" json:"discount_total"`
	CouponCode    string         `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	Status        OrderStatus    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	ShippingName  string         `gorm:"not null" json:"shipping_name"`
	ShippingPhone string         `json:"shipping_phone"`
	ShippingAddr  string         `gorm:"type:text;not null" json:"shipping_address"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	OrderID          uint           `gorm:"not null;index" json:"order_id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	ProductVariantID *uint          `gorm:"index" json:"product_variant_id,omitempty"`
	Quantity         int            `gorm:"not null" json:"quantity"`
	Price            float64        `gorm:"not null" json:"price"`             // unit price at order time, variant-adjusted
	VariantSnapshot  string         `gorm:"type:text" json:"variant_snapshot"` // e.g. "size: XL"
	CreatedAt        time.Time      `json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Order          Order           `gorm:"foreignKey:OrderID" json:"-"`
	Product        Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
