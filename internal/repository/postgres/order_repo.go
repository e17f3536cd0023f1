package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
	"github.com/yourusername/bookstore-api/internal/domain/repository"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
)

// OrderRepo implements repository.OrderRepository.
type OrderRepo struct {
	db *gorm.DB
}

// NewOrderRepo creates an order repository.
func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persists an order.
func (r *OrderRepo) Create(order *entity.Order) error {
	return r.db.Create(order).Error
}

// GetByID returns an order by ID, or ErrNotFound.
func (r *OrderRepo) GetByID(id uint) (*entity.Order, error) {
	var order entity.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ListAll returns every order, newest first.
func (r *OrderRepo) ListAll() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// Count returns the number of orders.
func (r *OrderRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Order{}).Count(&count).Error
	return count, err
}

// TotalRevenue sums the total of all orders.
func (r *OrderRepo) TotalRevenue() (float64, error) {
	var revenue float64
	err := r.db.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// SalesByDay aggregates order count and revenue per day over [from, to].
func (r *OrderRepo) SalesByDay(from, to time.Time) ([]repository.DailySales, error) {
	var rows []repository.DailySales
	err := r.db.Model(&entity.Order{}).
		Select("DATE_TRUNC('day', created_at) AS date, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Group("DATE_TRUNC('day', created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}
