// Package seed loads a fixed set of sample customers, products and orders.
package seed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/crmhub/crm-graphql/app/crm"
	"github.com/crmhub/crm-graphql/models"
)

// Resetter empties the store before fixtures are loaded.
type Resetter interface {
	Reset(ctx context.Context) error
}

type Summary struct {
	Customers int
	Products  int
	Orders    int
}

func phone(p string) *string { return &p }

func stock(n int) *int { return &n }

var customers = []crm.CustomerInput{
	{Name: "Alice Johnson", Email: "alice@example.com", Phone: phone("+1234567890")},
	{Name: "Bob Smith", Email: "bob@example.com", Phone: phone("123-456-7890")},
	{Name: "Carol Davis", Email: "carol@example.com", Phone: phone("+1-555-123-4567")},
	{Name: "David Wilson", Email: "david@example.com"},
}

var products = []crm.ProductInput{
	{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: stock(10)},
	{Name: "Mouse", Price: decimal.RequireFromString("29.99"), Stock: stock(50)},
	{Name: "Keyboard", Price: decimal.RequireFromString("79.99"), Stock: stock(25)},
	{Name: "Monitor", Price: decimal.RequireFromString("299.99"), Stock: stock(15)},
	{Name: "Headphones", Price: decimal.RequireFromString("149.99"), Stock: stock(30)},
}

// orders pair a customer email with product names.
var orders = []struct {
	customer string
	products []string
}{
	{customer: "alice@example.com", products: []string{"Laptop", "Mouse"}},
	{customer: "bob@example.com", products: []string{"Keyboard", "Monitor"}},
}

// Run wipes the store and loads the fixtures through the service, so running
// it again always ends in the same state.
func Run(ctx context.Context, svc *crm.Service, store Resetter, log *zap.Logger) (*Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("clear existing data: %w", err)
	}

	customerIDs := make(map[string]string, len(customers))
	for _, in := range customers {
		c, err := svc.CreateCustomer(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("seed customer %s: %w", in.Email, err)
		}
		customerIDs[c.Email] = strconv.FormatUint(uint64(c.ID), 10)
		log.Info("seeded customer", zap.String("name", c.Name))
	}

	productIDs := make(map[string]string, len(products))
	for _, in := range products {
		p, err := svc.CreateProduct(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("seed product %s: %w", in.Name, err)
		}
		productIDs[p.Name] = strconv.FormatUint(uint64(p.ID), 10)
		log.Info("seeded product", zap.String("name", p.Name), zap.String("price", p.Price.StringFixed(2)))
	}

	for _, o := range orders {
		in := crm.OrderInput{CustomerID: customerIDs[o.customer]}
		for _, name := range o.products {
			in.ProductIDs = append(in.ProductIDs, productIDs[name])
		}
		order, err := svc.CreateOrder(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("seed order for %s: %w", o.customer, err)
		}
		log.Info("seeded order", zap.Uint("id", order.ID), zap.String("total", order.TotalAmount.StringFixed(2)))
	}

	return count(ctx, svc)
}

func count(ctx context.Context, svc *crm.Service) (*Summary, error) {
	cs, err := svc.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	ps, err := svc.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	os, err := svc.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{Customers: len(cs), Products: len(ps), Orders: len(os)}, nil
}

var _ Resetter = (*models.Store)(nil)
var _ Resetter = (*models.MemoryStore)(nil)
