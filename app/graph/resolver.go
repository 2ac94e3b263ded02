package graph

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/crmhub/crm-graphql/app/crm"
	"github.com/crmhub/crm-graphql/models"
)

//go:embed schema.graphql
var SchemaSDL string

// CRM is the facade the resolvers delegate to. *crm.Service implements it.
type CRM interface {
	CreateCustomer(ctx context.Context, in crm.CustomerInput) (*models.Customer, error)
	BulkCreateCustomers(ctx context.Context, in []crm.CustomerInput) (*crm.BulkResult, error)
	CreateProduct(ctx context.Context, in crm.ProductInput) (*models.Product, error)
	CreateOrder(ctx context.Context, in crm.OrderInput) (*models.Order, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	CRM CRM
}

// NewSchema parses the SDL and binds it to the resolvers.
func NewSchema(svc CRM) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(SchemaSDL, &Resolver{CRM: svc})
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}

// FormatSchema validates the SDL and returns it pretty-printed.
func FormatSchema() (string, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SchemaSDL})
	if err != nil {
		return "", fmt.Errorf("load schema: %w", err)
	}
	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(schema)
	return buf.String(), nil
}

// --- Query ---

func (r *Resolver) Customers(ctx context.Context) ([]*CustomerResolver, error) {
	customers, err := r.CRM.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*CustomerResolver, len(customers))
	for i := range customers {
		out[i] = &CustomerResolver{c: &customers[i]}
	}
	return out, nil
}

func (r *Resolver) Products(ctx context.Context) ([]*ProductResolver, error) {
	products, err := r.CRM.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return productResolvers(products), nil
}

func (r *Resolver) Orders(ctx context.Context) ([]*OrderResolver, error) {
	orders, err := r.CRM.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*OrderResolver, len(orders))
	for i := range orders {
		out[i] = &OrderResolver{o: &orders[i]}
	}
	return out, nil
}

// --- Mutation ---

type CustomerInput struct {
	Name  string
	Email string
	Phone *string
}

func (in CustomerInput) toCRM() crm.CustomerInput {
	return crm.CustomerInput{Name: in.Name, Email: in.Email, Phone: in.Phone}
}

type BulkCustomerInput struct {
	Customers []CustomerInput
}

type ProductInput struct {
	Name  string
	Price Decimal
	Stock *int32
}

type OrderInput struct {
	CustomerID graphql.ID
	ProductIDs []graphql.ID
	OrderDate  *DateTime
}

func (r *Resolver) CreateCustomer(ctx context.Context, args struct{ Input CustomerInput }) (*CreateCustomerResponse, error) {
	customer, err := r.CRM.CreateCustomer(ctx, args.Input.toCRM())
	if err != nil {
		return nil, err
	}
	return &CreateCustomerResponse{
		customer: customer,
		message:  "Customer created successfully",
	}, nil
}

func (r *Resolver) BulkCreateCustomers(ctx context.Context, args struct{ Input BulkCustomerInput }) (*BulkCreateCustomersResponse, error) {
	inputs := make([]crm.CustomerInput, len(args.Input.Customers))
	for i, c := range args.Input.Customers {
		inputs[i] = c.toCRM()
	}
	res, err := r.CRM.BulkCreateCustomers(ctx, inputs)
	if err != nil {
		return nil, err
	}
	return &BulkCreateCustomersResponse{res: res}, nil
}

func (r *Resolver) CreateProduct(ctx context.Context, args struct{ Input ProductInput }) (*CreateProductResponse, error) {
	in := crm.ProductInput{
		Name:  args.Input.Name,
		Price: args.Input.Price.Decimal,
	}
	if args.Input.Stock != nil {
		stock := int(*args.Input.Stock)
		in.Stock = &stock
	}
	product, err := r.CRM.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	return &CreateProductResponse{product: product}, nil
}

func (r *Resolver) CreateOrder(ctx context.Context, args struct{ Input OrderInput }) (*CreateOrderResponse, error) {
	in := crm.OrderInput{
		CustomerID: string(args.Input.CustomerID),
		ProductIDs: make([]string, len(args.Input.ProductIDs)),
	}
	for i, id := range args.Input.ProductIDs {
		in.ProductIDs[i] = string(id)
	}
	if args.Input.OrderDate != nil {
		when := args.Input.OrderDate.Time
		in.OrderDate = &when
	}
	order, err := r.CRM.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	return &CreateOrderResponse{order: order}, nil
}
