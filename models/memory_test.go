package models

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCustomers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	alice := &Customer{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.CreateCustomer(ctx, alice))
	assert.NotZero(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	exists, err := store.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.CreateCustomer(ctx, &Customer{Name: "Copy", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := store.GetCustomerByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = store.GetCustomerByID(ctx, 999)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	all, err := store.GetAllCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStoreCreateCustomersSkipsTakenEmails(t *testing.T) {
	testCases := []struct {
		name             string
		batch            []*Customer
		expectedRejected []int
		expectedStored   int
	}{
		{
			name: "All new",
			batch: []*Customer{
				{Name: "Bob", Email: "bob@example.com"},
				{Name: "Carol", Email: "carol@example.com"},
			},
			expectedStored: 3,
		},
		{
			name: "Clash with stored email",
			batch: []*Customer{
				{Name: "Bob", Email: "bob@example.com"},
				{Name: "Alice", Email: "alice@example.com"},
				{Name: "Carol", Email: "carol@example.com"},
			},
			expectedRejected: []int{1},
			expectedStored:   3,
		},
		{
			name: "Clash inside batch",
			batch: []*Customer{
				{Name: "Bob", Email: "bob@example.com"},
				{Name: "Bobby", Email: "bob@example.com"},
			},
			expectedRejected: []int{1},
			expectedStored:   2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			require.NoError(t, store.CreateCustomer(ctx, &Customer{Name: "Alice", Email: "alice@example.com"}))

			rejected, err := store.CreateCustomers(ctx, tc.batch)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedRejected, rejected)
			for i, c := range tc.batch {
				if contains(tc.expectedRejected, i) {
					assert.Zero(t, c.ID)
				} else {
					assert.NotZero(t, c.ID)
				}
			}
			all, _ := store.GetAllCustomers(ctx)
			assert.Len(t, all, tc.expectedStored)
		})
	}
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func TestMemoryStoreOrders(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	customer := &Customer{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.CreateCustomer(ctx, customer))
	laptop := &Product{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10}
	require.NoError(t, store.CreateProduct(ctx, laptop))

	_, err := store.GetProductByID(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	order := &Order{CustomerID: customer.ID, Customer: *customer, Products: []Product{*laptop}, TotalAmount: laptop.Price}
	require.NoError(t, store.CreateOrder(ctx, order))
	assert.NotZero(t, order.ID)

	orders, err := store.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	// returned slices are copies
	orders[0].Products[0].Name = "Changed"
	again, _ := store.GetAllOrders(ctx)
	assert.Equal(t, "Laptop", again[0].Products[0].Name)
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateCustomer(ctx, &Customer{Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, store.CreateProduct(ctx, &Product{Name: "Mouse", Price: decimal.NewFromInt(10)}))

	require.NoError(t, store.Reset(ctx))

	customers, _ := store.GetAllCustomers(ctx)
	products, _ := store.GetAllProducts(ctx)
	orders, _ := store.GetAllOrders(ctx)
	assert.Empty(t, customers)
	assert.Empty(t, products)
	assert.Empty(t, orders)

	exists, _ := store.EmailExists(ctx, "alice@example.com")
	assert.False(t, exists)
}

func TestMemoryStoreGetFilteredProducts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, p := range []*Product{
		{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10},
		{Name: "Mouse", Price: decimal.RequireFromString("29.99"), Stock: 0},
		{Name: "Keyboard", Price: decimal.RequireFromString("79.99"), Stock: 25},
	} {
		require.NoError(t, store.CreateProduct(ctx, p))
	}
	below100 := decimal.NewFromInt(100)

	testCases := []struct {
		name          string
		offset, limit int
		filters       ProductFilters
		expectedNames []string
		expectedTotal int64
	}{
		{name: "First page", offset: 0, limit: 2, expectedNames: []string{"Laptop", "Mouse"}, expectedTotal: 3},
		{name: "Second page", offset: 2, limit: 2, expectedNames: []string{"Keyboard"}, expectedTotal: 3},
		{name: "Offset past end", offset: 5, limit: 2, expectedNames: []string{}, expectedTotal: 3},
		{name: "Price below", limit: 10, filters: ProductFilters{PriceLessThan: &below100}, expectedNames: []string{"Mouse", "Keyboard"}, expectedTotal: 2},
		{name: "In stock", limit: 10, filters: ProductFilters{InStock: true}, expectedNames: []string{"Laptop", "Keyboard"}, expectedTotal: 2},
		{name: "Both filters", limit: 10, filters: ProductFilters{PriceLessThan: &below100, InStock: true}, expectedNames: []string{"Keyboard"}, expectedTotal: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			products, total, err := store.GetFilteredProducts(ctx, tc.offset, tc.limit, tc.filters)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTotal, total)
			names := make([]string, 0, len(products))
			for _, p := range products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.expectedNames, names)
		})
	}
}
