package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bookstore-api/internal/domain/entity"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
	"github.com/yourusername/bookstore-api/internal/service/quizreward"
)

var couponTestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newCouponServiceForTest(repo *MockCouponRepo) *CouponService {
	svc := NewCouponService(repo)
	svc.now = func() time.Time { return couponTestNow }
	return svc
}

func validCoupon() *entity.Coupon {
	return &entity.Coupon{
		ID:                 1,
		Code:               "BOOKQUIZ10-2d31460104",
		DiscountPercentage: 10,
		ExpirationDate:     couponTestNow.AddDate(0, 0, 14),
		IsActive:           true,
		UserID:             42,
	}
}

func TestGetActiveCoupon(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	repo.On("FindActiveForUser", uint(42)).Return(validCoupon(), nil)

	coupon, err := svc.GetActiveCoupon(42)
	require.NoError(t, err)
	assert.Equal(t, "BOOKQUIZ10-2d31460104", coupon.Code)
}

func TestGetActiveCouponNone(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	repo.On("FindActiveForUser", uint(42)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetActiveCoupon(42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetActiveCouponExpiredIsRetired(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	expired := validCoupon()
	expired.ExpirationDate = couponTestNow.AddDate(0, 0, -1)
	repo.On("FindActiveForUser", uint(42)).Return(expired, nil)
	repo.On("Deactivate", expired).Return(nil)

	_, err := svc.GetActiveCoupon(42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, expired.IsActive)
	repo.AssertExpectations(t)
}

func TestValidateCoupon(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	repo.On("FindByCode", "BOOKQUIZ10-2d31460104").Return(validCoupon(), nil)

	// Input is trimmed before lookup; the code itself is matched as issued.
	coupon, err := svc.Validate(42, "  BOOKQUIZ10-2d31460104 ")
	require.NoError(t, err)
	assert.Equal(t, float64(10), coupon.DiscountPercentage)
}

func TestValidateCouponWrongOwner(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	repo.On("FindByCode", mock.Anything).Return(validCoupon(), nil)

	// Someone else's code looks identical to a nonexistent one.
	_, err := svc.Validate(999, "BOOKQUIZ10-2d31460104")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestValidateCouponInactive(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	used := validCoupon()
	used.IsActive = false
	repo.On("FindByCode", mock.Anything).Return(used, nil)

	_, err := svc.Validate(42, used.Code)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateCouponExpired(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	expired := validCoupon()
	expired.ExpirationDate = couponTestNow.Add(-time.Hour)
	repo.On("FindByCode", mock.Anything).Return(expired, nil)
	repo.On("Deactivate", expired).Return(nil)

	_, err := svc.Validate(42, expired.Code)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateCouponEmptyCode(t *testing.T) {
	svc := newCouponServiceForTest(new(MockCouponRepo))

	_, err := svc.Validate(42, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRedeemCoupon(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	coupon := validCoupon()
	repo.On("FindByCode", coupon.Code).Return(coupon, nil)
	repo.On("Deactivate", coupon).Return(nil)

	redeemed, err := svc.Redeem(42, coupon.Code)
	require.NoError(t, err)
	assert.False(t, redeemed.IsActive)
	repo.AssertExpectations(t)
}

func TestRedeemCouponMintedByGenerator(t *testing.T) {
	gen := quizreward.NewGeneratorDeterministic(
		func(string) (bool, error) { return false, nil },
		func() time.Time { return couponTestNow },
		func(int) int { return 421 },
		func() string { return "2d314651-84c5-4f3a-9e6b-7f0c3a1d9b42" },
	)
	code, err := gen.Generate("BOOKQUIZ10", 42)
	require.NoError(t, err)

	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	coupon := validCoupon()
	coupon.Code = code
	repo.On("FindByCode", code).Return(coupon, nil)
	repo.On("Deactivate", coupon).Return(nil)

	// Issued codes carry lowercase hex and must redeem exactly as issued.
	redeemed, err := svc.Redeem(42, code)
	require.NoError(t, err)
	assert.Equal(t, code, redeemed.Code)
	assert.False(t, redeemed.IsActive)
	repo.AssertExpectations(t)
}

func TestRedeemCouponValidationFailureSkipsDeactivate(t *testing.T) {
	repo := new(MockCouponRepo)
	svc := newCouponServiceForTest(repo)

	repo.On("FindByCode", mock.Anything).Return(nil, apperrors.ErrNotFound)

	_, err := svc.Redeem(42, "NOPE-123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Deactivate", mock.Anything)
}
