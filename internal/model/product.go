package model

import "time"

// Product represents the product master data. The Category field is
// resolved by the store on every read and never persisted directly.
type Product struct {
	ID          string       `json:"id" gorm:"type:char(24);primaryKey"`
	Name        string       `json:"name" gorm:"type:varchar(255);not null"`
	Description string       `json:"description" gorm:"type:text"`
	SKU         string       `json:"sku" gorm:"type:varchar(100);uniqueIndex;not null"`
	Price       float64      `json:"price" gorm:"not null;check:price >= 0"`
	Cost        float64      `json:"cost" gorm:"not null;check:cost >= 0"`
	Stock       int          `json:"stock" gorm:"default:0;check:stock >= 0"`
	MinStock    int          `json:"minStock" gorm:"default:0;check:min_stock >= 0"`
	CategoryID  string       `json:"categoryId" gorm:"type:char(24);index;not null"`
	Category    *CategoryRef `json:"category" gorm:"-"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// LowStock reports whether the product is at or below its reorder threshold
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// ProductInput holds the fields accepted when creating a product
type ProductInput struct {
	Name        string
	Description string
	SKU         string
	Price       float64
	Cost        float64
	Stock       int
	MinStock    int
	CategoryID  string
}

// ProductUpdate holds a partial update; nil fields are left untouched
type ProductUpdate struct {
	Name        *string
	Description *string
	SKU         *string
	Price       *float64
	Cost        *float64
	Stock       *int
	MinStock    *int
	CategoryID  *string
}
