package models

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the "postgres" database/sql driver used when Driver is "pq"
	_ "github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverPQ       = "pq"
	DriverMemory   = "memory"
)

// Open connects to PostgreSQL through gorm. The "postgres" driver uses pgx,
// "pq" routes the connection through lib/pq.
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	cfg := postgres.Config{DSN: dsn}
	switch strings.ToLower(driver) {
	case "", DriverPostgres:
	case DriverPQ:
		cfg.DriverName = "postgres"
	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.New(cfg), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return db, nil
}

// Migrate creates or updates the tables for every entity.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.Migrator().AutoMigrate(Tables...), "migrate")
}

// Store bundles the gorm repositories behind one value.
type Store struct {
	*CustomersRepository
	*ProductsRepository
	*OrdersRepository
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		CustomersRepository: NewCustomersRepository(db),
		ProductsRepository:  NewProductsRepository(db),
		OrdersRepository:    NewOrdersRepository(db),
		db:                  db,
	}
}

// Reset deletes every order, product and customer.
func (s *Store) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"order_products", "orders", "products", "customers"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return errors.Wrapf(err, "reset %s", table)
			}
		}
		return nil
	})
}
