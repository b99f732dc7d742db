package model

import "time"

// Category groups products for navigation and reporting
type Category struct {
	ID          string    `json:"id" gorm:"type:char(24);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryRef is the category shape inlined on product reads
type CategoryRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Ref returns the inline representation of the category
func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Description: c.Description}
}

// CategoryCount carries the number of products referencing a category
type CategoryCount struct {
	Products int `json:"products"`
}

// CategoryWithCount is the API representation of a category
type CategoryWithCount struct {
	Category
	Count CategoryCount `json:"_count"`
}

// CategoryInput holds the fields accepted when creating a category
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryUpdate holds a partial update; nil fields are left untouched
type CategoryUpdate struct {
	Name        *string
	Description *string
}
