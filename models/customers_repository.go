package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CustomersRepository struct {
	db *gorm.DB
}

func NewCustomersRepository(db *gorm.DB) *CustomersRepository {
	return &CustomersRepository{
		db: db,
	}
}

func (r *CustomersRepository) GetAllCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return customers, nil
}

func (r *CustomersRepository) GetCustomerByID(ctx context.Context, id uint) (*Customer, error) {
	var customer Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.Wrapf(err, "get customer %d", id)
	}
	return &customer, nil
}

func (r *CustomersRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check email")
	}
	return count > 0, nil
}

func (r *CustomersRepository) CreateCustomer(ctx context.Context, customer *Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return errors.Wrap(err, "insert customer")
	}
	return nil
}

// CreateCustomers inserts the customers in a single transaction, each row
// under its own savepoint. A row rejected by the unique email index is rolled
// back to its savepoint and skipped, and its index is returned. Any other
// failure rolls back the whole batch.
func (r *CustomersRepository) CreateCustomers(ctx context.Context, customers []*Customer) ([]int, error) {
	if len(customers) == 0 {
		return nil, nil
	}
	var rejected []int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rejected = rejected[:0]
		for i, customer := range customers {
			err := tx.Transaction(func(sp *gorm.DB) error {
				return sp.Create(customer).Error
			})
			if err == nil {
				continue
			}
			if IsUniqueViolation(err) {
				customer.ID = 0
				rejected = append(rejected, i)
				continue
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "insert customers")
	}
	return rejected, nil
}
