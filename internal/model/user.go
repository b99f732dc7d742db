package model

import "time"

// User roles form a closed set
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole reports whether role belongs to the closed role set
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User represents an application user
type User struct {
	ID        string    `json:"id" gorm:"type:char(24);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null;default:user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserInput holds the fields accepted when creating a user
type UserInput struct {
	Name  string
	Email string
	Role  string
}

// UserUpdate holds a partial update; nil fields are left untouched
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
}
