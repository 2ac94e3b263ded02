package models

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps customers, products and orders in process memory.
// It enforces the same unique email rule as the database.
type MemoryStore struct {
	mu        sync.RWMutex
	customers []Customer
	products  []Product
	orders    []Order
	nextID    uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *MemoryStore) GetAllCustomers(_ context.Context) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Customer(nil), m.customers...), nil
}

func (m *MemoryStore) GetCustomerByID(_ context.Context, id uint) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.ID == id {
			customer := c
			return &customer, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (m *MemoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.emailTaken(email), nil
}

func (m *MemoryStore) emailTaken(email string) bool {
	for _, c := range m.customers {
		if c.Email == email {
			return true
		}
	}
	return false
}

func (m *MemoryStore) CreateCustomer(ctx context.Context, customer *Customer) error {
	rejected, err := m.CreateCustomers(ctx, []*Customer{customer})
	if err != nil {
		return err
	}
	if len(rejected) > 0 {
		return ErrEmailTaken
	}
	return nil
}

// CreateCustomers stores the batch under one lock. Customers whose email is
// already stored, or repeated earlier in the batch, are skipped and their
// indexes returned.
func (m *MemoryStore) CreateCustomers(_ context.Context, customers []*Customer) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rejected []int
	now := time.Now()
	for i, c := range customers {
		if m.emailTaken(c.Email) {
			rejected = append(rejected, i)
			continue
		}
		c.ID = m.id()
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		m.customers = append(m.customers, *c)
	}
	return rejected, nil
}

func (m *MemoryStore) GetAllProducts(_ context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Product(nil), m.products...), nil
}

func (m *MemoryStore) GetFilteredProducts(_ context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []Product
	for _, p := range m.products {
		if filters.match(p) {
			matched = append(matched, p)
		}
	}
	total := int64(len(matched))

	if offset >= len(matched) {
		return []Product{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return append([]Product(nil), matched[offset:end]...), total, nil
}

func (m *MemoryStore) GetProductByID(_ context.Context, id uint) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (m *MemoryStore) CreateProduct(_ context.Context, product *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.id()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	m.products = append(m.products, *product)
	return nil
}

func (m *MemoryStore) GetAllOrders(_ context.Context) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]Order, len(m.orders))
	for i, o := range m.orders {
		o.Products = append([]Product(nil), o.Products...)
		orders[i] = o
	}
	return orders, nil
}

func (m *MemoryStore) CreateOrder(_ context.Context, order *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = m.id()
	stored := *order
	stored.Products = append([]Product(nil), order.Products...)
	m.orders = append(m.orders, stored)
	return nil
}

// Reset drops all stored entities.
func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = nil
	m.products = nil
	m.orders = nil
	return nil
}
