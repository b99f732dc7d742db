// Package store owns the persisted representation of categories, products,
// users, POS sales and settings. Two interchangeable backends implement the
// same capability interface: a PostgreSQL store and a JSON-file store.
// Handlers never branch on backend identity.
package store

import (
	"errors"
	"fmt"

	"github.com/invmanage/inventory-service/internal/model"
	"github.com/invmanage/inventory-service/pkg/config"
	"github.com/invmanage/inventory-service/pkg/database"
)

var (
	// ErrNotFound is returned when an identifier does not resolve to a record
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness rule
	ErrConflict = errors.New("record conflicts with an existing record")
	// ErrValidation is returned when a field value violates a storage constraint
	ErrValidation = errors.New("invalid field value")
)

// Store is the persistence capability used by all route handlers.
type Store interface {
	Categories() ([]model.Category, error)
	CategoryByID(id string) (*model.Category, error)
	AddCategory(in model.CategoryInput) (*model.Category, error)
	UpdateCategory(id string, upd model.CategoryUpdate) (*model.Category, error)
	DeleteCategory(id string) (bool, error)

	Products() ([]model.Product, error)
	ProductByID(id string) (*model.Product, error)
	AddProduct(in model.ProductInput) (*model.Product, error)
	UpdateProduct(id string, upd model.ProductUpdate) (*model.Product, error)
	DeleteProduct(id string) (bool, error)

	Users() ([]model.User, error)
	AddUser(in model.UserInput) (*model.User, error)
	UpdateUser(id string, upd model.UserUpdate) (*model.User, error)
	DeleteUser(id string) (bool, error)

	Sales() ([]model.SaleRecord, error)
	SalesByDate(date string) ([]model.SaleRecord, error)
	ReplaceDaySales(date string, records []model.SaleRecord) error

	Settings() ([]model.Setting, error)
	SettingByKey(key string) (*model.Setting, error)
	AddSetting(in model.SettingInput) (*model.Setting, error)
	UpdateSetting(key, value string) (*model.Setting, error)

	// InitializeData seeds sample data; a no-op once data exists
	InitializeData() error

	// Ping verifies the backend is reachable
	Ping() error
}

var active Store

// Init selects and initializes the storage backend at process startup.
func Init(cfg *config.Config) error {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		if err := database.InitDB(cfg); err != nil {
			return fmt.Errorf("init postgres backend: %w", err)
		}
		active = NewGormStore(database.GetDB())
	case config.BackendFile:
		fs, err := NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("init file backend: %w", err)
		}
		active = fs
	default:
		return fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	return nil
}

// Use installs a store as the active backend. Tests use this to run
// handlers against a throwaway file store.
func Use(s Store) {
	active = s
}

// Active returns the store selected at startup.
func Active() Store {
	return active
}

func validateProductNumbers(price, cost float64, stock, minStock int) error {
	switch {
	case price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	case cost < 0:
		return fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	case stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	case minStock < 0:
		return fmt.Errorf("%w: minimum stock cannot be negative", ErrValidation)
	}
	return nil
}
