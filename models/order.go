package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order links one customer to a set of products.
// TotalAmount is the sum of the linked product prices when the order was placed.
type Order struct {
	ID          uint            `gorm:"primaryKey"`
	CustomerID  uint            `gorm:"not null;index"`
	Customer    Customer        `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Products    []Product       `gorm:"many2many:order_products;constraint:OnDelete:CASCADE"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OrderDate   time.Time       `gorm:"not null"`
}

func (o *Order) TableName() string {
	return "orders"
}

// Tables lists the entities managed by AutoMigrate, parents first.
var Tables = []interface{}{
	&Customer{},
	&Product{},
	&Order{},
}
