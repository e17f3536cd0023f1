package repository

import (
	"time"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
)

// DailySales is one day's aggregated order volume.
type DailySales struct {
	Date    time.Time `json:"date"`
	Orders  int64     `json:"orders"`
	Revenue float64   `json:"revenue"`
}

// OrderRepository defines persistence for (simulated) orders.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id uint) (*entity.Order, error)
	ListByUser(userID uint) ([]entity.Order, error)
	ListAll() ([]entity.Order, error)
	Count() (int64, error)
	TotalRevenue() (float64, error)
	// SalesByDay aggregates order count and revenue per day over [from, to].
	SalesByDay(from, to time.Time) ([]DailySales, error)
}
