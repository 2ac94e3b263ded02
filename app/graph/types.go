package graph

import (
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/crmhub/crm-graphql/app/crm"
	"github.com/crmhub/crm-graphql/models"
)

func toID(id uint) graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(id), 10))
}

type CustomerResolver struct {
	c *models.Customer
}

func (r *CustomerResolver) ID() graphql.ID { return toID(r.c.ID) }
func (r *CustomerResolver) Name() string { return r.c.Name }
func (r *CustomerResolver) Email() string { return r.c.Email }
func (r *CustomerResolver) Phone() *string { return r.c.Phone }
func (r *CustomerResolver) CreatedAt() DateTime { return DateTime{r.c.CreatedAt} }

type ProductResolver struct {
	p *models.Product
}

func productResolvers(products []models.Product) []*ProductResolver {
	out := make([]*ProductResolver, len(products))
	for i := range products {
		out[i] = &ProductResolver{p: &products[i]}
	}
	return out
}

func (r *ProductResolver) ID() graphql.ID { return toID(r.p.ID) }
func (r *ProductResolver) Name() string { return r.p.Name }
func (r *ProductResolver) Price() Decimal { return Decimal{r.p.Price} }
func (r *ProductResolver) Stock() int32 { return int32(r.p.Stock) }
func (r *ProductResolver) CreatedAt() DateTime { return DateTime{r.p.CreatedAt} }

type OrderResolver struct {
	o *models.Order
}

func (r *OrderResolver) ID() graphql.ID { return toID(r.o.ID) }

func (r *OrderResolver) Customer() *CustomerResolver {
	return &CustomerResolver{c: &r.o.Customer}
}

func (r *OrderResolver) Products() []*ProductResolver {
	return productResolvers(r.o.Products)
}

func (r *OrderResolver) TotalAmount() Decimal { return Decimal{r.o.TotalAmount} }
func (r *OrderResolver) OrderDate() DateTime { return DateTime{r.o.OrderDate} }

type CreateCustomerResponse struct {
	customer *models.Customer
	message  string
}

func (r *CreateCustomerResponse) Customer() *CustomerResolver {
	return &CustomerResolver{c: r.customer}
}

func (r *CreateCustomerResponse) Message() string { return r.message }

type BulkCreateCustomersResponse struct {
	res *crm.BulkResult
}

func (r *BulkCreateCustomersResponse) Customers() []*CustomerResolver {
	out := make([]*CustomerResolver, len(r.res.Created))
	for i, c := range r.res.Created {
		out[i] = &CustomerResolver{c: c}
	}
	return out
}

func (r *BulkCreateCustomersResponse) Errors() []string { return r.res.Errors }

type CreateProductResponse struct {
	product *models.Product
}

func (r *CreateProductResponse) Product() *ProductResolver {
	return &ProductResolver{p: r.product}
}

type CreateOrderResponse struct {
	order *models.Order
}

func (r *CreateOrderResponse) Order() *OrderResolver {
	return &OrderResolver{o: r.order}
}
