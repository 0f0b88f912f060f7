package repositories

import (
	"mart/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	// DecrementStock subtracts quantity from the product's stock. It fails
	// with InsufficientStockError when stock < quantity; the check and the
	// subtraction are a single atomic operation per product row.
	DecrementStock(id uint, quantity int) error
	// RestoreStock adds quantity back to the product's stock.
	RestoreStock(id uint, quantity int) error
}
