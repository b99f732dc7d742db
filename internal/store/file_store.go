package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/invmanage/inventory-service/internal/model"
)

// One JSON array file per entity kind.
const (
	categoriesFile = "categories.json"
	productsFile   = "products.json"
	usersFile      = "users.json"
	salesFile      = "sales.json"
	settingsFile   = "settings.json"
)

// fileStore persists records as JSON array files on local disk. Every
// operation re-reads the file, so out-of-band edits are picked up on the
// next call. A single mutex serializes operations; the check-then-act
// sequences below are only safe because of it.
type fileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a Store writing JSON files under dir.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func loadRecords[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

func saveRecords[T any](path string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *fileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Categories

func (s *fileStore) Categories() ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[model.Category](s.path(categoriesFile))
}

func (s *fileStore) CategoryByID(id string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories, err := loadRecords[model.Category](s.path(categoriesFile))
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *fileStore) AddCategory(in model.CategoryInput) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories, err := loadRecords[model.Category](s.path(categoriesFile))
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, in.Name) {
			return nil, fmt.Errorf("%w: category name %q", ErrConflict, in.Name)
		}
	}
	now := time.Now().UTC()
	category := model.Category{
		ID:          model.NewID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	categories = append(categories, category)
	if err := saveRecords(s.path(categoriesFile), categories); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *fileStore) UpdateCategory(id string, upd model.CategoryUpdate) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories, err := loadRecords[model.Category](s.path(categoriesFile))
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		if upd.Name != nil {
			for j := range categories {
				if j != i && strings.EqualFold(categories[j].Name, *upd.Name) {
					return nil, fmt.Errorf("%w: category name %q", ErrConflict, *upd.Name)
				}
			}
			categories[i].Name = *upd.Name
		}
		if upd.Description != nil {
			categories[i].Description = *upd.Description
		}
		categories[i].UpdatedAt = time.Now().UTC()
		if err := saveRecords(s.path(categoriesFile), categories); err != nil {
			return nil, err
		}
		return &categories[i], nil
	}
	return nil, ErrNotFound
}

func (s *fileStore) DeleteCategory(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories, err := loadRecords[model.Category](s.path(categoriesFile))
	if err != nil {
		return false, err
	}
	for i := range categories {
		if categories[i].ID == id {
			categories = append(categories[:i], categories[i+1:]...)
			return true, saveRecords(s.path(categoriesFile), categories)
		}
	}
	return false, nil
}

// Products

func (s *fileStore) Products() ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProducts()
}

// loadProducts reads products and resolves each category by a linear
// scan of the category file. Callers must hold the mutex.
func (s *fileStore) loadProducts() ([]model.Product, error) {
	products, err := loadRecords[model.Product](s.path(productsFile))
	if err != nil {
		return nil, err
	}
	categories, err := loadRecords[model.Category](s.path(categoriesFile))
	if err != nil {
		return nil, err
	}
	refs := make(map[string]*model.CategoryRef, len(categories))
	for i := range categories {
		refs[categories[i].ID] = categories[i].Ref()
	}
	for i := range products {
		products[i].Category = refs[products[i].CategoryID]
	}
	return products, nil
}

func (s *fileStore) ProductByID(id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.loadProducts()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *fileStore) AddProduct(in model.ProductInput) (*model.Product, error) {
	if err := validateProductNumbers(in.Price, in.Cost, in.Stock, in.MinStock); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := loadRecords[model.Product](s.path(productsFile))
	if err != nil {
		return nil, err
	}
	sku := strings.ToUpper(in.SKU)
	for i := range products {
		if products[i].SKU == sku {
			return nil, fmt.Errorf("%w: SKU %q", ErrConflict, sku)
		}
	}
	now := time.Now().UTC()
	product := model.Product{
		ID:          model.NewID(),
		Name:        in.Name,
		Description: in.Description,
		SKU:         sku,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	products = append(products, product)
	if err := saveRecords(s.path(productsFile), products); err != nil {
		return nil, err
	}
	s.resolveCategory(&product)
	return &product, nil
}

// resolveCategory attaches the inline category ref. Callers must hold the mutex.
func (s *fileStore) resolveCategory(p *model.Product) {
	categories, err := loadRecords[model.Category](s.path(categoriesFile))
	if err != nil {
		return
	}
	for i := range categories {
		if categories[i].ID == p.CategoryID {
			p.Category = categories[i].Ref()
			return
		}
	}
}

func (s *fileStore) UpdateProduct(id string, upd model.ProductUpdate) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := loadRecords[model.Product](s.path(productsFile))
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		if upd.Name != nil {
			products[i].Name = *upd.Name
		}
		if upd.Description != nil {
			products[i].Description = *upd.Description
		}
		if upd.SKU != nil {
			sku := strings.ToUpper(*upd.SKU)
			for j := range products {
				if j != i && products[j].SKU == sku {
					return nil, fmt.Errorf("%w: SKU %q", ErrConflict, sku)
				}
			}
			products[i].SKU = sku
		}
		if upd.Price != nil {
			products[i].Price = *upd.Price
		}
		if upd.Cost != nil {
			products[i].Cost = *upd.Cost
		}
		if upd.Stock != nil {
			products[i].Stock = *upd.Stock
		}
		if upd.MinStock != nil {
			products[i].MinStock = *upd.MinStock
		}
		if upd.CategoryID != nil {
			products[i].CategoryID = *upd.CategoryID
		}
		if err := validateProductNumbers(products[i].Price, products[i].Cost, products[i].Stock, products[i].MinStock); err != nil {
			return nil, err
		}
		products[i].UpdatedAt = time.Now().UTC()
		if err := saveRecords(s.path(productsFile), products); err != nil {
			return nil, err
		}
		product := products[i]
		s.resolveCategory(&product)
		return &product, nil
	}
	return nil, ErrNotFound
}

func (s *fileStore) DeleteProduct(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := loadRecords[model.Product](s.path(productsFile))
	if err != nil {
		return false, err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return true, saveRecords(s.path(productsFile), products)
		}
	}
	return false, nil
}

// Users

func (s *fileStore) Users() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[model.User](s.path(usersFile))
}

func (s *fileStore) AddUser(in model.UserInput) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := loadRecords[model.User](s.path(usersFile))
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(in.Email)
	for i := range users {
		if users[i].Email == email {
			return nil, fmt.Errorf("%w: email %q", ErrConflict, email)
		}
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	now := time.Now().UTC()
	user := model.User{
		ID:        model.NewID(),
		Name:      in.Name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	users = append(users, user)
	if err := saveRecords(s.path(usersFile), users); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *fileStore) UpdateUser(id string, upd model.UserUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := loadRecords[model.User](s.path(usersFile))
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if upd.Email != nil {
			email := strings.ToLower(*upd.Email)
			for j := range users {
				if j != i && users[j].Email == email {
					return nil, fmt.Errorf("%w: email %q", ErrConflict, email)
				}
			}
			users[i].Email = email
		}
		if upd.Name != nil {
			users[i].Name = *upd.Name
		}
		if upd.Role != nil {
			users[i].Role = *upd.Role
		}
		users[i].UpdatedAt = time.Now().UTC()
		if err := saveRecords(s.path(usersFile), users); err != nil {
			return nil, err
		}
		return &users[i], nil
	}
	return nil, ErrNotFound
}

func (s *fileStore) DeleteUser(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := loadRecords[model.User](s.path(usersFile))
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].ID == id {
			users = append(users[:i], users[i+1:]...)
			return true, saveRecords(s.path(usersFile), users)
		}
	}
	return false, nil
}

// Sales

func (s *fileStore) Sales() ([]model.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[model.SaleRecord](s.path(salesFile))
}

func (s *fileStore) SalesByDate(date string) ([]model.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := loadRecords[model.SaleRecord](s.path(salesFile))
	if err != nil {
		return nil, err
	}
	matched := []model.SaleRecord{}
	for i := range records {
		if records[i].Date == date {
			matched = append(matched, records[i])
		}
	}
	return matched, nil
}

func (s *fileStore) ReplaceDaySales(date string, records []model.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := loadRecords[model.SaleRecord](s.path(salesFile))
	if err != nil {
		return err
	}
	kept := existing[:0]
	for i := range existing {
		if existing[i].Date != date {
			kept = append(kept, existing[i])
		}
	}
	now := time.Now().UTC()
	for i := range records {
		records[i].ID = model.NewID()
		records[i].Date = date
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
		kept = append(kept, records[i])
	}
	return saveRecords(s.path(salesFile), kept)
}

// Settings

func (s *fileStore) Settings() ([]model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[model.Setting](s.path(settingsFile))
}

func (s *fileStore) SettingByKey(key string) (*model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, err := loadRecords[model.Setting](s.path(settingsFile))
	if err != nil {
		return nil, err
	}
	for i := range settings {
		if settings[i].Key == key {
			return &settings[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *fileStore) AddSetting(in model.SettingInput) (*model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, err := loadRecords[model.Setting](s.path(settingsFile))
	if err != nil {
		return nil, err
	}
	for i := range settings {
		if settings[i].Key == in.Key {
			return nil, fmt.Errorf("%w: setting key %q", ErrConflict, in.Key)
		}
	}
	now := time.Now().UTC()
	setting := model.Setting{
		ID:          model.NewID(),
		Key:         in.Key,
		Value:       in.Value,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	settings = append(settings, setting)
	if err := saveRecords(s.path(settingsFile), settings); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *fileStore) UpdateSetting(key, value string) (*model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, err := loadRecords[model.Setting](s.path(settingsFile))
	if err != nil {
		return nil, err
	}
	for i := range settings {
		if settings[i].Key == key {
			settings[i].Value = value
			settings[i].UpdatedAt = time.Now().UTC()
			if err := saveRecords(s.path(settingsFile), settings); err != nil {
				return nil, err
			}
			return &settings[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *fileStore) InitializeData() error {
	return seed(s)
}

func (s *fileStore) Ping() error {
	_, err := os.Stat(s.dir)
	return err
}
