package repositories_test

import (
	"fmt"
	"testing"

	"mart/internal/apperrors"
	"mart/internal/models"
	"mart/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, dst ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(dst...))
	return db
}

func sampleOrder(userID uint) *models.Order {
	return &models.Order{
		UserID: userID,
		Lines: []models.OrderLine{
			{
				ProductID: 1,
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("5.00"),
				Subtotal:  decimal.RequireFromString("10.00"),
			},
			{
				ProductID: 2,
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("2.50"),
				Subtotal:  decimal.RequireFromString("2.50"),
			},
		},
		TotalAmount: decimal.RequireFromString("12.50"),
		Status:      models.StatusPending,
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t, &models.Order{}, &models.OrderLine{})
	repo := repositories.NewGORMOrderRepository(db)

	order := sampleOrder(1)
	assert.NoError(t, repo.Create(order))
	assert.NotZero(t, order.ID)

	// Lines come back with the order.
	got, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), got.UserID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Len(t, got.Lines, 2)
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.TotalAmount))
	assert.True(t, decimal.RequireFromString("5.00").Equal(got.Lines[0].UnitPrice))
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	db := openTestDB(t, &models.Order{}, &models.OrderLine{})
	repo := repositories.NewGORMOrderRepository(db)

	order, err := repo.GetByID(999)
	assert.Nil(t, order)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestOrderRepository_GetByUserID(t *testing.T) {
	db := openTestDB(t, &models.Order{}, &models.OrderLine{})
	repo := repositories.NewGORMOrderRepository(db)

	assert.NoError(t, repo.Create(sampleOrder(1)))
	assert.NoError(t, repo.Create(sampleOrder(1)))
	assert.NoError(t, repo.Create(sampleOrder(2)))

	orders, err := repo.GetByUserID(1)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, uint(1), order.UserID)
		assert.Len(t, order.Lines, 2)
	}

	orders, err = repo.GetByUserID(42)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := openTestDB(t, &models.Order{}, &models.OrderLine{})
	repo := repositories.NewGORMOrderRepository(db)

	order := sampleOrder(1)
	assert.NoError(t, repo.Create(order))

	assert.NoError(t, repo.UpdateStatus(order.ID, models.StatusShipped))
	got, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)

	assert.True(t, apperrors.IsNotFound(repo.UpdateStatus(999, models.StatusShipped)))
}

func TestProductRepository_DecrementStock(t *testing.T) {
	db := openTestDB(t, &models.Product{})
	repo := repositories.NewGORMProductRepository(db)

	product := &models.Product{Name: "Laptop", Price: decimal.RequireFromString("1200.00"), Stock: 3}
	assert.NoError(t, repo.Create(product))

	assert.NoError(t, repo.DecrementStock(product.ID, 2))
	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	// Requesting more than remains fails and leaves the stock unchanged.
	err = repo.DecrementStock(product.ID, 2)
	var stockErr *apperrors.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Laptop", stockErr.Product)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 2, stockErr.Requested)

	got, err = repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	// Unknown product
	assert.True(t, apperrors.IsNotFound(repo.DecrementStock(999, 1)))
}

func TestProductRepository_RestoreStock(t *testing.T) {
	db := openTestDB(t, &models.Product{})
	repo := repositories.NewGORMProductRepository(db)

	product := &models.Product{Name: "Laptop", Price: decimal.RequireFromString("1200.00"), Stock: 1}
	assert.NoError(t, repo.Create(product))

	assert.NoError(t, repo.RestoreStock(product.ID, 2))
	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	assert.True(t, apperrors.IsNotFound(repo.RestoreStock(999, 1)))
}
