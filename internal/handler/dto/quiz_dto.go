package dto

import (
	"time"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
)

// QuizSummaryResponse is the admin list view of a quiz. Questions are
// omitted; answers never leave the entity layer in JSON anyway.
type QuizSummaryResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	QuestionCount int       `json:"question_count"`
	RewardTiers   int       `json:"reward_tiers"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewQuizSummaryResponse(quiz *entity.Quiz) *QuizSummaryResponse {
	return &QuizSummaryResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		IsActive:      quiz.IsActive,
		QuestionCount: len(quiz.Questions),
		RewardTiers:   len(quiz.Rewards),
		CreatedAt:     quiz.CreatedAt,
	}
}

func NewListQuizResponse(quizzes []entity.Quiz) []QuizSummaryResponse {
	response := make([]QuizSummaryResponse, len(quizzes))
	for i := range quizzes {
		response[i] = *NewQuizSummaryResponse(&quizzes[i])
	}
	return response
}

// CouponResponse is the client view of a coupon.
type CouponResponse struct {
	Code               string    `json:"code"`
	DiscountPercentage float64   `json:"discount_percentage"`
	ExpirationDate     time.Time `json:"expiration_date"`
	IsActive           bool      `json:"is_active"`
}

func NewCouponResponse(coupon *entity.Coupon) *CouponResponse {
	return &CouponResponse{
		Code:               coupon.Code,
		DiscountPercentage: coupon.DiscountPercentage,
		ExpirationDate:     coupon.ExpirationDate,
		IsActive:           coupon.IsActive,
	}
}

// SubmitQuizResponse is the outcome of a scored submission.
type SubmitQuizResponse struct {
	Score          int             `json:"score"`
	TotalQuestions int             `json:"total_questions"`
	Coupon         *CouponResponse `json:"coupon,omitempty"`
	Message        string          `json:"message"`
}

// OrderResponse is the client view of a completed order.
type OrderResponse struct {
	ID             uint               `json:"id"`
	Items          []entity.OrderItem `json:"items"`
	Subtotal       float64            `json:"subtotal"`
	DiscountAmount float64            `json:"discount_amount"`
	Total          float64            `json:"total"`
	CouponCode     string             `json:"coupon_code,omitempty"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

func NewOrderResponse(order *entity.Order) *OrderResponse {
	return &OrderResponse{
		ID:             order.ID,
		Items:          order.Items,
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		Total:          order.Total,
		CouponCode:     order.CouponCode,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt,
	}
}

func NewListOrderResponse(orders []entity.Order) []OrderResponse {
	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = *NewOrderResponse(&orders[i])
	}
	return response
}
