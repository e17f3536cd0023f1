package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/bookstore-api/internal/handler/dto"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
	"github.com/yourusername/bookstore-api/internal/service"
)

// PaymentHandler serves the simulated checkout.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CheckoutRequest is the simulated payment payload.
type CheckoutRequest struct {
	Items []struct {
		ProductID uint    `json:"product_id" binding:"required"`
		Title     string  `json:"title" binding:"required"`
		Quantity  int     `json:"quantity" binding:"required,min=1"`
		Price     float64 `json:"price" binding:"required,min=0"`
	} `json:"items" binding:"required,min=1"`
	CouponCode string `json:"coupon_code"`
}

// Checkout charges the cart instantly (no gateway) and records the order.
// POST /api/payments/checkout
func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.paymentService.Checkout(userID, items, req.CouponCode)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// ListOrders returns the caller's order history.
// GET /api/payments/orders
func (h *PaymentHandler) ListOrders(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return
	}

	orders, err := h.paymentService.ListOrders(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListOrderResponse(orders))
}

// GetOrder returns a single order owned by the caller.
// GET /api/payments/orders/:id
func (h *PaymentHandler) GetOrder(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return
	}
	orderID := c.MustGet("orderID").(uint)

	order, err := h.paymentService.GetOrder(userID, orderID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}
