package model

import "time"

// SaleDateFormat is the canonical date key for ingested POS records
const SaleDateFormat = "2006-01-02"

// SaleRecord is one aggregated line of point-of-sale data: the total
// quantity and revenue for one product on one day. Re-uploading data
// for a day replaces that day's records.
type SaleRecord struct {
	ID          string    `json:"id" gorm:"type:char(24);primaryKey"`
	Date        string    `json:"date" gorm:"type:varchar(10);index;not null"`
	ProductName string    `json:"productName" gorm:"type:varchar(255);not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Revenue     float64   `json:"revenue" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
