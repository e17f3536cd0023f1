package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/bookstore-api/internal/handler/dto"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
	"github.com/yourusername/bookstore-api/internal/service"
)

// CouponHandler serves the user-facing coupon endpoints.
type CouponHandler struct {
	couponService *service.CouponService
}

func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// GetActiveCoupon returns the caller's active coupon.
// GET /api/coupons/active
func (h *CouponHandler) GetActiveCoupon(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return
	}

	coupon, err := h.couponService.GetActiveCoupon(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCouponResponse(coupon))
}

// ValidateCouponRequest carries the code to check.
type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateCoupon checks a code without redeeming it.
// POST /api/coupons/validate
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return
	}

	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := h.couponService.Validate(userID, req.Code)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  true,
		"coupon": dto.NewCouponResponse(coupon),
	})
}
