package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

func (r *OrdersRepository) GetAllOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.id")
		}).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// CreateOrder inserts the order row and its product links in one transaction.
// Customer and Products must already exist; they are referenced, not upserted.
func (r *OrdersRepository) CreateOrder(ctx context.Context, order *Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Customer", "Products.*").Create(order).Error
	})
	if err != nil {
		return errors.Wrap(err, "insert order")
	}
	return nil
}
