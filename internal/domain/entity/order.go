package entity

import "time"

// Order statuses. Payments are simulated, so orders jump straight to paid.
const (
	OrderStatusPaid = "paid"
)

// OrderItem is a line item snapshot stored inside the order's JSONB column.
type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a completed (simulated) purchase.
type Order struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"not null;index" json:"user_id"`
	Items          OrderItemList `gorm:"type:jsonb;not null" json:"items"`
	Subtotal       float64       `gorm:"not null" json:"subtotal"`
	DiscountAmount float64       `gorm:"not null;default:0" json:"discount_amount"`
	Total          float64       `gorm:"not null" json:"total"`
	CouponCode     string        `gorm:"size:64;not null;default:''" json:"coupon_code,omitempty"`
	Status         string        `gorm:"size:20;not null;default:'paid'" json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName sets the GORM table name.
func (Order) TableName() string {
	return "orders"
}
