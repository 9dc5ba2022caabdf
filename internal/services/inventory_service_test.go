// internal/services/inventory_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockadoodle/backend/internal/models"
)

func TestAdjustStock(t *testing.T) {
	t.Run("restock adds to the stock level", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := NewInventoryService(db, NewActivityService(db))
		cola := createTestProduct(t, db, "Cola", 5, 1.50)

		product, err := svc.AdjustStock(cola.ID, 20, nil, models.ActionRestock, "Qty 20")
		require.NoError(t, err)
		assert.Equal(t, 25, product.StockLevel)

		var logCount int64
		require.NoError(t, db.Model(&models.ActivityLog{}).
			Where("action_type = ?", models.ActionRestock).Count(&logCount).Error)
		assert.Equal(t, int64(1), logCount)
	})

	t.Run("dispose floors at zero instead of erroring", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := NewInventoryService(db, NewActivityService(db))
		cola := createTestProduct(t, db, "Cola", 5, 1.50)

		product, err := svc.AdjustStock(cola.ID, -8, nil, models.ActionDispose, "Qty 8")
		require.NoError(t, err)
		assert.Zero(t, product.StockLevel)
	})

	t.Run("unknown product", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := NewInventoryService(db, NewActivityService(db))
		cola := createTestProduct(t, db, "Cola", 5, 1.50)
		require.NoError(t, db.Delete(cola).Error)

		_, err := svc.AdjustStock(cola.ID, 1, nil, models.ActionRestock, "")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestLowStockAndExpiring(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewInventoryService(db, NewActivityService(db))

	low := createTestProduct(t, db, "Low", 2, 1.00)
	createTestProduct(t, db, "Healthy", 50, 1.00)

	soon := time.Now().UTC().AddDate(0, 0, 3)
	far := time.Now().UTC().AddDate(0, 1, 0)
	expiring := &models.Product{Name: "Expiring", StockLevel: 30, MinStockLevel: 10, Price: 1.00, ExpirationDate: &soon}
	require.NoError(t, db.Create(expiring).Error)
	longLife := &models.Product{Name: "LongLife", StockLevel: 30, MinStockLevel: 10, Price: 1.00, ExpirationDate: &far}
	require.NoError(t, db.Create(longLife).Error)

	lowStock, err := svc.GetLowStock()
	require.NoError(t, err)
	require.Len(t, lowStock, 1)
	assert.Equal(t, low.ID, lowStock[0].ID)

	expiringSoon, err := svc.GetExpiring(7)
	require.NoError(t, err)
	require.Len(t, expiringSoon, 1)
	assert.Equal(t, expiring.ID, expiringSoon[0].ID)

	lowCount, err := svc.CountLowStock()
	require.NoError(t, err)
	assert.Equal(t, int64(1), lowCount)

	expCount, err := svc.CountExpiring(7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expCount)
}
