// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:120;not null"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}
