package repository

import (
	"github.com/yourusername/bookstore-api/internal/domain/entity"
)

// CouponRepository defines persistence for discount coupons.
type CouponRepository interface {
	FindActiveForUser(userID uint) (*entity.Coupon, error)
	FindByCode(code string) (*entity.Coupon, error)
	// CodeExists reports whether any coupon (active or not) carries the code.
	// Injected into the code generator as its collision predicate.
	CodeExists(code string) (bool, error)
	Deactivate(coupon *entity.Coupon) error
	Create(coupon *entity.Coupon) error
	// ReplaceActive deactivates the owner's current active coupon (if any)
	// and inserts the new one in a single transaction, so the one-active-
	// coupon invariant holds even under concurrent submissions.
	ReplaceActive(coupon *entity.Coupon) error
}
