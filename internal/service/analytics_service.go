package service

import (
	"fmt"
	"time"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
	"github.com/yourusername/bookstore-api/internal/domain/repository"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
)

// SalesSummary is the admin dashboard headline numbers.
type SalesSummary struct {
	Users        int64   `json:"users"`
	Orders       int64   `json:"orders"`
	TotalRevenue float64 `json:"total_revenue"`
	Quizzes      int64   `json:"quizzes"`
}

// AnalyticsService aggregates store activity for the admin dashboard and
// the order export.
type AnalyticsService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	quizRepo  repository.QuizRepository
}

func NewAnalyticsService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, quizRepo repository.QuizRepository) *AnalyticsService {
	return &AnalyticsService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		quizRepo:  quizRepo,
	}
}

// Summary returns the headline counters.
func (s *AnalyticsService) Summary() (*SalesSummary, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	orders, err := s.orderRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	revenue, err := s.orderRepo.TotalRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	quizzes, err := s.quizRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count quizzes: %w", err)
	}

	return &SalesSummary{
		Users:        users,
		Orders:       orders,
		TotalRevenue: revenue,
		Quizzes:      quizzes,
	}, nil
}

// DailySales aggregates order volume per day over [from, to].
func (s *AnalyticsService) DailySales(from, to time.Time) ([]repository.DailySales, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' date is before 'from' date", apperrors.ErrValidation)
	}
	return s.orderRepo.SalesByDay(from, to)
}

// AllOrders returns every order for the admin export, newest first.
func (s *AnalyticsService) AllOrders() ([]entity.Order, error) {
	return s.orderRepo.ListAll()
}
