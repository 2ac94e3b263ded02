package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable product.
// Price is stored as decimal(10,2) and Stock defaults to zero.
type Product struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:100;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (p *Product) TableName() string {
	return "products"
}
