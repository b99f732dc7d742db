package store

import (
	"fmt"

	"github.com/invmanage/inventory-service/internal/model"
)

var sampleCategories = []model.CategoryInput{
	{Name: "Electronics", Description: "Electronic devices and gadgets"},
	{Name: "Furniture", Description: "Office and home furniture"},
	{Name: "Clothing", Description: "Apparel and fashion accessories"},
	{Name: "Books", Description: "Educational and reference materials"},
	{Name: "Office Supplies", Description: "Stationery and office equipment"},
}

// Sample products reference seeded categories by name.
var sampleProducts = []struct {
	model.ProductInput
	CategoryName string
}{
	{
		ProductInput: model.ProductInput{
			Name:        "Business Laptop",
			Description: `15.6" laptop perfect for business use`,
			SKU:         "LAPTOP-001",
			Price:       899.99,
			Cost:        650.00,
			Stock:       12,
			MinStock:    3,
		},
		CategoryName: "Electronics",
	},
	{
		ProductInput: model.ProductInput{
			Name:        "Wireless Mouse",
			Description: "Ergonomic wireless mouse with long battery life",
			SKU:         "MOUSE-001",
			Price:       29.99,
			Cost:        15.00,
			Stock:       45,
			MinStock:    10,
		},
		CategoryName: "Electronics",
	},
	{
		ProductInput: model.ProductInput{
			Name:        "Standing Desk",
			Description: "Adjustable height standing desk",
			SKU:         "DESK-001",
			Price:       349.99,
			Cost:        220.00,
			Stock:       8,
			MinStock:    2,
		},
		CategoryName: "Furniture",
	},
}

var sampleUsers = []model.UserInput{
	{Name: "System Administrator", Email: "admin@invmanage.com", Role: model.RoleAdmin},
	{Name: "Inventory Manager", Email: "manager@invmanage.com", Role: model.RoleManager},
}

var defaultSettings = []model.SettingInput{
	{Key: "company_name", Value: "InvManage", Description: "Name shown on reports and exports"},
	{Key: "currency", Value: "USD", Description: "Currency code for prices and revenue"},
	{Key: "low_stock_alerts", Value: "true", Description: "Flag products at or below their reorder threshold"},
}

// seed inserts the sample data set through the store's own operations.
// Each entity kind is seeded only while its collection is empty, so
// calling it on every list request is a no-op once data exists.
func seed(s Store) error {
	categories, err := s.Categories()
	if err != nil {
		return fmt.Errorf("seed: list categories: %w", err)
	}
	if len(categories) == 0 {
		for _, in := range sampleCategories {
			if _, err := s.AddCategory(in); err != nil {
				return fmt.Errorf("seed: add category %q: %w", in.Name, err)
			}
		}
	}

	products, err := s.Products()
	if err != nil {
		return fmt.Errorf("seed: list products: %w", err)
	}
	if len(products) == 0 {
		categories, err = s.Categories()
		if err != nil {
			return fmt.Errorf("seed: reload categories: %w", err)
		}
		byName := make(map[string]string, len(categories))
		for i := range categories {
			byName[categories[i].Name] = categories[i].ID
		}
		for _, sp := range sampleProducts {
			in := sp.ProductInput
			in.CategoryID = byName[sp.CategoryName]
			if in.CategoryID == "" {
				continue
			}
			if _, err := s.AddProduct(in); err != nil {
				return fmt.Errorf("seed: add product %q: %w", in.Name, err)
			}
		}
	}

	users, err := s.Users()
	if err != nil {
		return fmt.Errorf("seed: list users: %w", err)
	}
	if len(users) == 0 {
		for _, in := range sampleUsers {
			if _, err := s.AddUser(in); err != nil {
				return fmt.Errorf("seed: add user %q: %w", in.Email, err)
			}
		}
	}

	settings, err := s.Settings()
	if err != nil {
		return fmt.Errorf("seed: list settings: %w", err)
	}
	if len(settings) == 0 {
		for _, in := range defaultSettings {
			if _, err := s.AddSetting(in); err != nil {
				return fmt.Errorf("seed: add setting %q: %w", in.Key, err)
			}
		}
	}

	return nil
}
