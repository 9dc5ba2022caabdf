// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the primary key in-process so the same models work
// against Postgres in production and in-memory SQLite in tests.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type UserRole string

const (
	RoleAdmin    UserRole = "Admin"
	RoleManager  UserRole = "Manager"
	RoleRetailer UserRole = "Retailer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleRetailer:
		return true
	}
	return false
}

// Product action types recorded in the activity log. Non-product actions
// (user management, raw API calls) use free-text tags instead.
const (
	ActionRestock  = "Restock"
	ActionSale     = "Sale"
	ActionSaleUndo = "Sale Undone"
	ActionDispose  = "Dispose"
	ActionDelete   = "DELETE"
)

// Activity sources
const (
	SourceDesktop = "Desktop App"
	SourceAPI     = "API"
)
