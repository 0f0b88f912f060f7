package repositories

import (
	"sync"

	"mart/internal/apperrors"
	"mart/internal/models"

	"github.com/samber/lo"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Values(r.products), nil
}

// GetByCategory returns the products of one category.
func (r *MockProductRepository) GetByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Filter(lo.Values(r.products), func(p models.Product, _ int) bool {
		return p.Category == category
	}), nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFound("product", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
		r.nextID++
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NewNotFound("product", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NewNotFound("product", id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock subtracts quantity from the product's stock, failing when
// stock < quantity. The lock makes the check-and-set atomic.
func (r *MockProductRepository) DecrementStock(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return apperrors.NewNotFound("product", id)
	}
	if product.Stock < quantity {
		return &apperrors.InsufficientStockError{
			Product:   product.Name,
			Available: product.Stock,
			Requested: quantity,
		}
	}
	product.Stock -= quantity
	r.products[id] = product
	return nil
}

// RestoreStock adds quantity back to the product's stock.
func (r *MockProductRepository) RestoreStock(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return apperrors.NewNotFound("product", id)
	}
	product.Stock += quantity
	r.products[id] = product
	return nil
}
