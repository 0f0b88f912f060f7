package repositories

import (
	"mart/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id uint, status models.OrderStatus) error
}
