// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name           string     `json:"name" gorm:"uniqueIndex;size:120;not null"`
	Brand          string     `json:"brand,omitempty" gorm:"size:120"`
	StockLevel     int        `json:"stock_level" gorm:"not null;default:0"`
	MinStockLevel  int        `json:"min_stock_level" gorm:"not null;default:10"`
	Price          float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty" gorm:"type:date"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid;index"`
	ImageURL       string     `json:"image_url,omitempty" gorm:"size:512"`

	// Relationships
	Category   *Category     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	LogEntries []ActivityLog `json:"log_entries,omitempty" gorm:"foreignKey:ProductID"`
}

// BelowMinStock reports whether the product is under its reorder threshold.
func (p *Product) BelowMinStock() bool {
	return p.StockLevel < p.MinStockLevel
}
