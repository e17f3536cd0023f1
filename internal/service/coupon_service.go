package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
	"github.com/yourusername/bookstore-api/internal/domain/repository"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
)

// CouponService exposes the user-facing coupon operations: looking up the
// active coupon, validating one at checkout and redeeming it.
type CouponService struct {
	couponRepo repository.CouponRepository
	now        func() time.Time
}

func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		now:        time.Now,
	}
}

// GetActiveCoupon returns the user's active, unexpired coupon. An expired
// coupon found on the way is deactivated and reported as not found.
func (s *CouponService) GetActiveCoupon(userID uint) (*entity.Coupon, error) {
	coupon, err := s.couponRepo.FindActiveForUser(userID)
	if err != nil {
		return nil, err
	}

	if coupon.IsExpired(s.now()) {
		s.deactivateExpired(coupon)
		return nil, fmt.Errorf("%w: coupon has expired", apperrors.ErrNotFound)
	}

	return coupon, nil
}

// Validate checks that a code names a coupon owned by the user that is
// active and unexpired, and returns it. Codes are matched exactly as issued;
// only surrounding whitespace is stripped.
func (s *CouponService) Validate(userID uint, code string) (*entity.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: coupon code is required", apperrors.ErrValidation)
	}

	coupon, err := s.couponRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid coupon code", apperrors.ErrNotFound)
		}
		return nil, err
	}

	if coupon.UserID != userID {
		// Do not reveal that the code exists for someone else.
		return nil, fmt.Errorf("%w: invalid coupon code", apperrors.ErrNotFound)
	}
	if !coupon.IsActive {
		return nil, fmt.Errorf("%w: coupon is no longer active", apperrors.ErrValidation)
	}
	if coupon.IsExpired(s.now()) {
		s.deactivateExpired(coupon)
		return nil, fmt.Errorf("%w: coupon has expired", apperrors.ErrValidation)
	}

	return coupon, nil
}

// Redeem validates the coupon and deactivates it so it cannot be used again.
func (s *CouponService) Redeem(userID uint, code string) (*entity.Coupon, error) {
	coupon, err := s.Validate(userID, code)
	if err != nil {
		return nil, err
	}

	coupon.IsActive = false
	if err := s.couponRepo.Deactivate(coupon); err != nil {
		return nil, fmt.Errorf("failed to redeem coupon %s: %w", coupon.Code, err)
	}
	log.Printf("[CouponService] Coupon %s redeemed by user #%d", coupon.Code, userID)
	return coupon, nil
}

// deactivateExpired retires an expired coupon. Best effort: the caller
// already treats the coupon as unusable.
func (s *CouponService) deactivateExpired(coupon *entity.Coupon) {
	coupon.IsActive = false
	if err := s.couponRepo.Deactivate(coupon); err != nil {
		log.Printf("[CouponService] Failed to deactivate expired coupon %s: %v", coupon.Code, err)
	}
}
