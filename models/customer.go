package models

import "time"

// Customer represents a CRM customer.
// Email is unique across all customers; Phone is optional.
type Customer struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:254;uniqueIndex;not null"`
	Phone     *string   `gorm:"size:20"`
	CreatedAt time.Time `gorm:"not null"`
}

func (c *Customer) TableName() string {
	return "customers"
}
