package service

import (
	"fmt"
	"log"
	"math"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
	"github.com/yourusername/bookstore-api/internal/domain/repository"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
)

// CheckoutItem is one cart line in a checkout request.
type CheckoutItem struct {
	ProductID uint
	Title     string
	Quantity  int
	Price     float64
}

// PaymentService runs the simulated checkout: there is no payment provider,
// orders are charged instantly and recorded as paid. Coupons are redeemed
// through the coupon service so a used coupon cannot be replayed.
type PaymentService struct {
	orderRepo repository.OrderRepository
	couponSvc *CouponService
}

func NewPaymentService(orderRepo repository.OrderRepository, couponSvc *CouponService) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		couponSvc: couponSvc,
	}
}

// Checkout validates the cart, applies the coupon if one is supplied,
// redeems it and records the paid order.
func (s *PaymentService) Checkout(userID uint, items []CheckoutItem, couponCode string) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperrors.ErrValidation)
	}

	subtotal := 0.0
	orderItems := make(entity.OrderItemList, 0, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item #%d has a non-positive quantity", apperrors.ErrValidation, i+1)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: item #%d has a negative price", apperrors.ErrValidation, i+1)
		}
		subtotal += float64(item.Quantity) * item.Price
		orderItems = append(orderItems, entity.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	subtotal = roundCents(subtotal)

	discount := 0.0
	appliedCode := ""
	if couponCode != "" {
		coupon, err := s.couponSvc.Redeem(userID, couponCode)
		if err != nil {
			return nil, err
		}
		discount = roundCents(subtotal * coupon.DiscountPercentage / 100)
		appliedCode = coupon.Code
	}

	order := &entity.Order{
		UserID:         userID,
		Items:          orderItems,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          roundCents(subtotal - discount),
		CouponCode:     appliedCode,
		Status:         entity.OrderStatusPaid,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}
	log.Printf("[PaymentService] Order #%d paid by user #%d: total %.2f (discount %.2f)",
		order.ID, userID, order.Total, order.DiscountAmount)
	return order, nil
}

// ListOrders returns the user's order history, newest first.
func (s *PaymentService) ListOrders(userID uint) ([]entity.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetOrder returns one of the user's orders. Orders belonging to other users
// are reported as not found.
func (s *PaymentService) GetOrder(userID, orderID uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
