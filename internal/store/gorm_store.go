package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invmanage/inventory-service/internal/model"
	"gorm.io/gorm"
)

// gormStore persists records in PostgreSQL through GORM. Uniqueness rules
// are backed by unique indexes, so a concurrent duplicate write fails at
// the database rather than slipping past the handler's pre-check.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the given GORM handle.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	}
	return err
}

// Categories

func (s *gormStore) Categories() ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.Order("created_at").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *gormStore) CategoryByID(id string) (*model.Category, error) {
	var category model.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *gormStore) AddCategory(in model.CategoryInput) (*model.Category, error) {
	category := model.Category{
		ID:          model.NewID(),
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *gormStore) UpdateCategory(id string, upd model.CategoryUpdate) (*model.Category, error) {
	var category model.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if upd.Name != nil {
		category.Name = *upd.Name
	}
	if upd.Description != nil {
		category.Description = *upd.Description
	}
	if err := s.db.Save(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *gormStore) DeleteCategory(id string) (bool, error) {
	result := s.db.Delete(&model.Category{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Products

func (s *gormStore) Products() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Order("created_at").Find(&products).Error; err != nil {
		return nil, err
	}
	categories, err := s.Categories()
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

func (s *gormStore) ProductByID(id string) (*model.Product, error) {
	var product model.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	s.resolveCategory(&product)
	return &product, nil
}

func (s *gormStore) resolveCategory(p *model.Product) {
	var category model.Category
	if err := s.db.First(&category, "id = ?", p.CategoryID).Error; err == nil {
		p.Category = category.Ref()
	}
}

func (s *gormStore) AddProduct(in model.ProductInput) (*model.Product, error) {
	if err := validateProductNumbers(in.Price, in.Cost, in.Stock, in.MinStock); err != nil {
		return nil, err
	}
	product := model.Product{
		ID:          model.NewID(),
		Name:        in.Name,
		Description: in.Description,
		SKU:         strings.ToUpper(in.SKU),
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		CategoryID:  in.CategoryID,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, translate(err)
	}
	s.resolveCategory(&product)
	return &product, nil
}

func (s *gormStore) UpdateProduct(id string, upd model.ProductUpdate) (*model.Product, error) {
	var product model.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.SKU != nil {
		product.SKU = strings.ToUpper(*upd.SKU)
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.Cost != nil {
		product.Cost = *upd.Cost
	}
	if upd.Stock != nil {
		product.Stock = *upd.Stock
	}
	if upd.MinStock != nil {
		product.MinStock = *upd.MinStock
	}
	if upd.CategoryID != nil {
		product.CategoryID = *upd.CategoryID
	}
	if err := validateProductNumbers(product.Price, product.Cost, product.Stock, product.MinStock); err != nil {
		return nil, err
	}
	if err := s.db.Save(&product).Error; err != nil {
		return nil, translate(err)
	}
	s.resolveCategory(&product)
	return &product, nil
}

func (s *gormStore) DeleteProduct(id string) (bool, error) {
	result := s.db.Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Users

func (s *gormStore) Users() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) AddUser(in model.UserInput) (*model.User, error) {
	user := model.User{
		ID:    model.NewID(),
		Name:  in.Name,
		Email: strings.ToLower(in.Email),
		Role:  in.Role,
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UpdateUser(id string, upd model.UserUpdate) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = strings.ToLower(*upd.Email)
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	if err := s.db.Save(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) DeleteUser(id string) (bool, error) {
	result := s.db.Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Sales

func (s *gormStore) Sales() ([]model.SaleRecord, error) {
	var records []model.SaleRecord
	if err := s.db.Order("date, product_name").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *gormStore) SalesByDate(date string) ([]model.SaleRecord, error) {
	var records []model.SaleRecord
	if err := s.db.Where("date = ?", date).Order("product_name").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *gormStore) ReplaceDaySales(date string, records []model.SaleRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.SaleRecord{}, "date = ?", date).Error; err != nil {
			return err
		}
		for i := range records {
			records[i].ID = model.NewID()
			records[i].Date = date
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Settings

func (s *gormStore) Settings() ([]model.Setting, error) {
	var settings []model.Setting
	if err := s.db.Order("key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *gormStore) SettingByKey(key string) (*model.Setting, error) {
	var setting model.Setting
	if err := s.db.First(&setting, "key = ?", key).Error; err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (s *gormStore) AddSetting(in model.SettingInput) (*model.Setting, error) {
	setting := model.Setting{
		ID:          model.NewID(),
		Key:         in.Key,
		Value:       in.Value,
		Description: in.Description,
	}
	if err := s.db.Create(&setting).Error; err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (s *gormStore) UpdateSetting(key, value string) (*model.Setting, error) {
	var setting model.Setting
	if err := s.db.First(&setting, "key = ?", key).Error; err != nil {
		return nil, translate(err)
	}
	setting.Value = value
	if err := s.db.Save(&setting).Error; err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (s *gormStore) InitializeData() error {
	return seed(s)
}

func (s *gormStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
