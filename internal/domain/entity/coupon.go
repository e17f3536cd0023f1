package entity

import "time"

// Coupon is a redeemable discount code owned by a single user. A user holds
// at most one active coupon; issuing a new one deactivates the previous one
// first, and the partial unique index idx_coupons_single_active_per_user
// backs that invariant at the storage layer.
type Coupon struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Code               string    `gorm:"size:64;not null;uniqueIndex" json:"code"`
	DiscountPercentage float64   `gorm:"not null" json:"discount_percentage"`
	ExpirationDate     time.Time `gorm:"not null" json:"expiration_date"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName sets the GORM table name.
func (Coupon) TableName() string {
	return "coupons"
}

// IsExpired reports whether the coupon has passed its expiration date.
func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.ExpirationDate)
}
