// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string   `json:"username" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'Retailer'"`
	Email        string   `json:"email,omitempty" gorm:"size:255"`
	IsActive     bool     `json:"is_active" gorm:"not null;default:true"`

	// Relationships
	Sales      []Sale           `json:"sales,omitempty" gorm:"foreignKey:RetailerID"`
	Metrics    *RetailerMetrics `json:"metrics,omitempty" gorm:"foreignKey:RetailerID"`
	LogEntries []ActivityLog    `json:"log_entries,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
