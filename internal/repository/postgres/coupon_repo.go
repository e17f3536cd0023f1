package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
)

// CouponRepo implements repository.CouponRepository.
type CouponRepo struct {
	db *gorm.DB
}

// NewCouponRepo creates a coupon repository.
func NewCouponRepo(db *gorm.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

// FindActiveForUser returns the user's active coupon, or ErrNotFound.
func (r *CouponRepo) FindActiveForUser(userID uint) (*entity.Coupon, error) {
	var coupon entity.Coupon
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindByCode returns the coupon carrying the code, or ErrNotFound.
func (r *CouponRepo) FindByCode(code string) (*entity.Coupon, error) {
	var coupon entity.Coupon
	err := r.db.Where("code = ?", code).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// CodeExists reports whether any coupon carries the code.
func (r *CouponRepo) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Coupon{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// Deactivate flips a coupon's active flag off.
func (r *CouponRepo) Deactivate(coupon *entity.Coupon) error {
	coupon.IsActive = false
	return r.db.Model(&entity.Coupon{}).
		Where("id = ?", coupon.ID).
		Update("is_active", false).
		Error
}

// Create persists a coupon.
func (r *CouponRepo) Create(coupon *entity.Coupon) error {
	err := r.db.Create(coupon).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: coupon code %q already exists", apperrors.ErrConflict, coupon.Code)
	}
	return err
}

// ReplaceActive deactivates the owner's current active coupon and inserts
// the new one in one transaction. The partial unique index
// idx_coupons_single_active_per_user backstops the invariant under races.
func (r *CouponRepo) ReplaceActive(coupon *entity.Coupon) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Coupon{}).
			Where("user_id = ? AND is_active = ?", coupon.UserID, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate prior coupon for user #%d: %w", coupon.UserID, err)
		}
		if err := tx.Create(coupon).Error; err != nil {
			return fmt.Errorf("failed to create coupon: %w", err)
		}
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: coupon code %q already exists", apperrors.ErrConflict, coupon.Code)
	}
	return err
}
