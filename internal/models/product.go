package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Price is a fixed-point decimal; stock
// never goes negative (enforced by the conditional decrement in the
// repository, not just the validate tag).
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
