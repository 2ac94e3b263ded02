package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/crmhub/crm-graphql/models"
)

type CustomerRepository interface {
	GetAllCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	// CreateCustomers inserts the batch in one transaction and returns the
	// indexes of the customers the unique email index turned away.
	CreateCustomers(ctx context.Context, customers []*models.Customer) (rejected []int, err error)
}

type ProductRepository interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
}

type OrderRepository interface {
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
}

// Repository is everything the Service needs from storage.
// models.Store and models.MemoryStore both satisfy it.
type Repository interface {
	CustomerRepository
	ProductRepository
	OrderRepository
}

type CustomerInput struct {
	Name  string `validate:"required,max=100"`
	Email string `validate:"required,max=254"`
	Phone *string
}

type ProductInput struct {
	Name  string `validate:"required,max=100"`
	Price decimal.Decimal
	Stock *int
}

type OrderInput struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

// BulkResult holds the outcome of BulkCreateCustomers. Errors has one
// "Customer N: ..." entry per rejected input, N counting from 1.
type BulkResult struct {
	Created []*models.Customer
	Errors  []string
}

// Service validates inputs and creates customers, products and orders.
type Service struct {
	customers CustomerRepository
	products  ProductRepository
	orders    OrderRepository
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		customers: repo,
		products:  repo,
		orders:    repo,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (in CustomerInput) normalized() CustomerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			in.Phone = nil
		} else {
			in.Phone = &phone
		}
	}
	return in
}

// validateCustomer applies the creation rules in order: field shape, email
// uniqueness (against the store and the emails already accepted in batch),
// then the phone format.
func (s *Service) validateCustomer(ctx context.Context, in CustomerInput, batch map[string]bool) error {
	if err := checkFields(in); err != nil {
		return err
	}
	if batch[in.Email] {
		return ErrDuplicateEmail
	}
	exists, err := s.customers.EmailExists(ctx, in.Email)
	if err != nil {
		return unexpected("creating customer", err)
	}
	if exists {
		return ErrDuplicateEmail
	}
	if in.Phone != nil && !ValidPhone(*in.Phone) {
		return ErrInvalidPhoneFormat
	}
	return nil
}

func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	in = in.normalized()
	if err := s.validateCustomer(ctx, in, nil); err != nil {
		s.log.Debug("customer rejected", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	customer := &models.Customer{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: s.now(),
	}
	if err := s.customers.CreateCustomer(ctx, customer); err != nil {
		// the pre-check can lose a race; the unique index has the last word
		if models.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail.withCause(err)
		}
		s.log.Error("create customer failed", zap.Error(err))
		return nil, unexpected("creating customer", err)
	}

	s.log.Info("customer created", zap.Uint("id", customer.ID), zap.String("email", customer.Email))
	return customer, nil
}

// BulkCreateCustomers validates every input independently and inserts the
// accepted ones in a single transaction. Rejected inputs, including those the
// unique index turns away at insert time, are reported in the result and never
// abort the batch; any other insert failure does.
func (s *Service) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) (*BulkResult, error) {
	result := &BulkResult{
		Created: []*models.Customer{},
		Errors:  []string{},
	}

	now := s.now()
	failures := make(map[int]string)
	batch := make(map[string]bool, len(inputs))
	pending := make([]*models.Customer, 0, len(inputs))
	origin := make([]int, 0, len(inputs)) // input index of each pending customer
	for i, in := range inputs {
		in = in.normalized()
		if err := s.validateCustomer(ctx, in, batch); err != nil {
			failures[i] = bulkMessage(err)
			continue
		}
		batch[in.Email] = true
		pending = append(pending, &models.Customer{
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			CreatedAt: now,
		})
		origin = append(origin, i)
	}

	rejected, err := s.customers.CreateCustomers(ctx, pending)
	if err != nil {
		s.log.Error("bulk create customers failed", zap.Int("count", len(pending)), zap.Error(err))
		return nil, unexpected("creating customers", err)
	}

	// lost the race against a concurrent insert of the same email
	skip := make(map[int]bool, len(rejected))
	for _, idx := range rejected {
		skip[idx] = true
		failures[origin[idx]] = ErrDuplicateEmail.Message
		s.log.Debug("customer rejected by unique index", zap.String("email", pending[idx].Email))
	}
	for idx, c := range pending {
		if !skip[idx] {
			result.Created = append(result.Created, c)
		}
	}
	for i := range inputs {
		if msg, ok := failures[i]; ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: %s", i+1, msg))
		}
	}

	s.log.Info("customers created",
		zap.Int("created", len(result.Created)),
		zap.Int("rejected", len(result.Errors)))
	return result, nil
}

// bulkMessage is the per-entry text of a bulk failure. Phone errors drop the
// format hint that single creation gives.
func bulkMessage(err error) string {
	if errors.Is(err, ErrInvalidPhoneFormat) {
		return "Invalid phone format"
	}
	return err.Error()
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := checkFields(in); err != nil {
		return nil, err
	}
	// stored as decimal(10,2): check the value that will be persisted
	price := in.Price.Round(2)
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	product := &models.Product{
		Name:      in.Name,
		Price:     price,
		Stock:     stock,
		CreatedAt: s.now(),
	}
	if err := s.products.CreateProduct(ctx, product); err != nil {
		s.log.Error("create product failed", zap.Error(err))
		return nil, unexpected("creating product", err)
	}

	s.log.Info("product created", zap.Uint("id", product.ID), zap.String("price", product.Price.String()))
	return product, nil
}

func (s *Service) CreateOrder(ctx context.Context, in OrderInput) (*models.Order, error) {
	customer, err := s.lookupCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(in.ProductIDs) == 0 {
		return nil, ErrNoProductsSelected
	}
	products, err := s.lookupProducts(ctx, uniqueIDs(in.ProductIDs))
	if err != nil {
		return nil, err
	}

	orderDate := s.now()
	if in.OrderDate != nil && !in.OrderDate.IsZero() {
		orderDate = in.OrderDate.UTC()
	}
	order := &models.Order{
		CustomerID:  customer.ID,
		Customer:    *customer,
		Products:    products,
		TotalAmount: OrderTotal(products),
		OrderDate:   orderDate,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.log.Error("create order failed", zap.Uint("customer", customer.ID), zap.Error(err))
		return nil, unexpected("creating order", err)
	}

	s.log.Info("order created",
		zap.Uint("id", order.ID),
		zap.Uint("customer", customer.ID),
		zap.Int("products", len(products)),
		zap.String("total", order.TotalAmount.String()))
	return order, nil
}

// OrderTotal sums the product prices, each taken at the two decimal places
// it is stored with.
func OrderTotal(products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price.Round(2))
	}
	return total
}

func (s *Service) lookupCustomer(ctx context.Context, rawID string) (*models.Customer, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, ErrCustomerNotFound
	}
	customer, err := s.customers.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound.withCause(err)
		}
		return nil, unexpected("creating order", err)
	}
	return customer, nil
}

// lookupProducts resolves ids in order and stops at the first unknown one.
func (s *Service) lookupProducts(ctx context.Context, ids []string) ([]models.Product, error) {
	products := make([]models.Product, 0, len(ids))
	for _, rawID := range ids {
		id, ok := parseID(rawID)
		if !ok {
			return nil, productNotFound(rawID, nil)
		}
		product, err := s.products.GetProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				return nil, productNotFound(rawID, err)
			}
			return nil, unexpected("creating order", err)
		}
		products = append(products, *product)
	}
	return products, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.GetAllCustomers(ctx)
	return customers, wrap("listing customers", err)
}

func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.GetAllProducts(ctx)
	return products, wrap("listing products", err)
}

func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.GetAllOrders(ctx)
	return orders, wrap("listing orders", err)
}
