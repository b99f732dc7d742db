package model

import "time"

// Setting is a named application configuration value
type Setting struct {
	ID          string    `json:"id" gorm:"type:char(24);primaryKey"`
	Key         string    `json:"key" gorm:"type:varchar(100);not null;uniqueIndex"`
	Value       string    `json:"value" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SettingInput holds the fields accepted when creating a setting
type SettingInput struct {
	Key         string
	Value       string
	Description string
}
