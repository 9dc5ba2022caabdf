// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.RetailerMetrics{},
		&models.ActivityLog{},
	)
	require.NoError(t, err)

	return db
}

func createTestRetailer(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username: username,
		Role:     models.RoleRetailer,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, stock int, price float64) *models.Product {
	product := &models.Product{
		Name:          name,
		StockLevel:    stock,
		MinStockLevel: 10,
		Price:         price,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
