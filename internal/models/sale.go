// internal/models/sale.go
package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleItem is one line of a sale, captured at transaction time. The snapshot
// is denormalized on purpose: product edits or deletes after the sale must
// not rewrite history.
type SaleItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

type Sale struct {
	BaseModel
	RetailerID    uuid.UUID  `json:"retailer_id" gorm:"type:uuid;not null;index"`
	TotalAmount   float64    `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	SaleItemsJSON string     `json:"-" gorm:"column:sale_items_json;type:text;not null"`
	Items         []SaleItem `json:"items" gorm:"-"`

	Retailer *User `json:"retailer,omitempty" gorm:"foreignKey:RetailerID"`
}

// SetItems snapshots the line items into the persisted JSON column.
func (s *Sale) SetItems(items []SaleItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.SaleItemsJSON = string(raw)
	s.Items = items
	return nil
}

// AfterFind rehydrates the line-item snapshot on every load.
func (s *Sale) AfterFind(tx *gorm.DB) error {
	if s.SaleItemsJSON == "" {
		s.Items = nil
		return nil
	}
	return json.Unmarshal([]byte(s.SaleItemsJSON), &s.Items)
}
