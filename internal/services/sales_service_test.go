// internal/services/sales_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/models"
)

func newTestSalesService(db *gorm.DB) *SalesService {
	return NewSalesService(db, NewActivityService(db))
}

func floatPtr(f float64) *float64 { return &f }

func TestRecordSale(t *testing.T) {
	t.Run("records a multi-line sale and decrements stock", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)
		chips := createTestProduct(t, db, "Chips", 5, 2.00)

		sale, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID: retailer.ID,
			Items: []SaleLineItem{
				{ProductID: cola.ID, Quantity: 3, Price: 1.50},
				{ProductID: chips.ID, Quantity: 2, Price: 2.00},
			},
			TotalAmount: floatPtr(8.50),
		})
		require.NoError(t, err)
		assert.Equal(t, 8.50, sale.TotalAmount)
		assert.Len(t, sale.Items, 2)

		var gotCola, gotChips models.Product
		require.NoError(t, db.First(&gotCola, "id = ?", cola.ID).Error)
		require.NoError(t, db.First(&gotChips, "id = ?", chips.ID).Error)
		assert.Equal(t, 17, gotCola.StockLevel)
		assert.Equal(t, 3, gotChips.StockLevel)
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  uuid.New(),
			Items:       nil,
			TotalAmount: floatPtr(0),
		})
		assert.ErrorIs(t, err, ErrInvalidPayload)

		_, err = svc.RecordSale(nil)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("rejects declared total that does not match line items", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 2, Price: 1.50}},
			TotalAmount: floatPtr(99.00),
		})
		assert.ErrorIs(t, err, ErrTotalMismatch)

		// Nothing was decremented
		var got models.Product
		require.NoError(t, db.First(&got, "id = ?", cola.ID).Error)
		assert.Equal(t, 20, got.StockLevel)
	})

	t.Run("accepts a total within a cent of the line items", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.10)

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 3, Price: 1.10}},
			TotalAmount: floatPtr(3.30),
		})
		require.NoError(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 0, Price: 1.50}},
			TotalAmount: floatPtr(0),
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: -2, Price: 1.50}},
			TotalAmount: floatPtr(-3.00),
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("rejects unknown retailer and unknown product", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  uuid.New(),
			Items:       []SaleLineItem{{ProductID: uuid.New(), Quantity: 1, Price: 1.00}},
			TotalAmount: floatPtr(1.00),
		})
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: uuid.New(), Quantity: 1, Price: 1.00}},
			TotalAmount: floatPtr(1.00),
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("insufficient stock aborts the whole sale", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)
		chips := createTestProduct(t, db, "Chips", 1, 2.00)

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID: retailer.ID,
			Items: []SaleLineItem{
				{ProductID: cola.ID, Quantity: 3, Price: 1.50},
				{ProductID: chips.ID, Quantity: 5, Price: 2.00},
			},
			TotalAmount: floatPtr(14.50),
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)

		// First line must have been rolled back too
		var gotCola models.Product
		require.NoError(t, db.First(&gotCola, "id = ?", cola.ID).Error)
		assert.Equal(t, 20, gotCola.StockLevel)

		var saleCount int64
		require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
		assert.Zero(t, saleCount)
	})

	t.Run("selling the exact remaining stock empties the shelf", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 3, 1.00)

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 3, Price: 1.00}},
			TotalAmount: floatPtr(3.00),
		})
		require.NoError(t, err)

		var got models.Product
		require.NoError(t, db.First(&got, "id = ?", cola.ID).Error)
		assert.Zero(t, got.StockLevel)

		// Next attempt fails
		_, err = svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 1, Price: 1.00}},
			TotalAmount: floatPtr(1.00),
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("borderline stock admits exactly one of two competing sales", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 5, 1.00)

		sellThree := func() error {
			_, err := svc.RecordSale(&RecordSaleRequest{
				RetailerID:  retailer.ID,
				Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 3, Price: 1.00}},
				TotalAmount: floatPtr(3.00),
			})
			return err
		}

		require.NoError(t, sellThree())
		assert.ErrorIs(t, sellThree(), ErrInsufficientStock)

		var got models.Product
		require.NoError(t, db.First(&got, "id = ?", cola.ID).Error)
		assert.Equal(t, 2, got.StockLevel)

		var saleCount int64
		require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
		assert.Equal(t, int64(1), saleCount)
	})

	t.Run("stock drained between the check and the decrement aborts the sale", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 5, 1.00)

		// Simulate a competing sale landing after the pre-check read: the
		// first update against products finds the stock already drained.
		drained := false
		err := db.Callback().Update().Before("gorm:update").
			Register("drain_stock_once", func(tx *gorm.DB) {
				if drained || tx.Statement.Table != "products" {
					return
				}
				drained = true
				tx.Session(&gorm.Session{NewDB: true}).
					Exec("UPDATE products SET stock_level = 1 WHERE id = ?", cola.ID)
			})
		require.NoError(t, err)
		defer db.Callback().Update().Remove("drain_stock_once")

		_, err = svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 3, Price: 1.00}},
			TotalAmount: floatPtr(3.00),
		})
		assert.ErrorIs(t, err, ErrConcurrencyConflict)
		assert.True(t, drained)

		// The drain happened inside the aborted transaction, so the
		// rollback restores the original stock and records nothing.
		var got models.Product
		require.NoError(t, db.First(&got, "id = ?", cola.ID).Error)
		assert.Equal(t, 5, got.StockLevel)

		var saleCount int64
		require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
		assert.Zero(t, saleCount)
	})

	t.Run("writes one activity row per line item", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)
		chips := createTestProduct(t, db, "Chips", 20, 2.00)

		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID: retailer.ID,
			Items: []SaleLineItem{
				{ProductID: cola.ID, Quantity: 1, Price: 1.50},
				{ProductID: chips.ID, Quantity: 1, Price: 2.00},
			},
			TotalAmount: floatPtr(3.50),
		})
		require.NoError(t, err)

		var logCount int64
		require.NoError(t, db.Model(&models.ActivityLog{}).
			Where("action_type = ?", models.ActionSale).Count(&logCount).Error)
		assert.Equal(t, int64(2), logCount)
	})
}

func TestRecordSaleMetrics(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 12, 0, 0, 0, time.UTC)
	}

	t.Run("creates metrics row and accumulates quota", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		svc.now = func() time.Time { return day(1) }
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 100, 2.00)

		for i := 0; i < 3; i++ {
			_, err := svc.RecordSale(&RecordSaleRequest{
				RetailerID:  retailer.ID,
				Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 1, Price: 2.00}},
				TotalAmount: floatPtr(2.00),
			})
			require.NoError(t, err)
		}

		var m models.RetailerMetrics
		require.NoError(t, db.First(&m, "retailer_id = ?", retailer.ID).Error)
		assert.Equal(t, 6.00, m.DailyQuotaUSD)
		assert.Equal(t, 1, m.CurrentStreak)
	})

	t.Run("consecutive days extend the streak, a gap resets it", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 100, 2.00)

		sellOn := func(d int) {
			svc.now = func() time.Time { return day(d) }
			_, err := svc.RecordSale(&RecordSaleRequest{
				RetailerID:  retailer.ID,
				Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 1, Price: 2.00}},
				TotalAmount: floatPtr(2.00),
			})
			require.NoError(t, err)
		}

		sellOn(1)
		sellOn(2)
		sellOn(3)

		var m models.RetailerMetrics
		require.NoError(t, db.First(&m, "retailer_id = ?", retailer.ID).Error)
		assert.Equal(t, 3, m.CurrentStreak)

		sellOn(10)
		require.NoError(t, db.First(&m, "retailer_id = ?", retailer.ID).Error)
		assert.Equal(t, 1, m.CurrentStreak)
		assert.Equal(t, 8.00, m.DailyQuotaUSD)
	})
}

func TestUndoSale(t *testing.T) {
	t.Run("restores stock, reverses quota and deletes the sale", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)

		sale, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 4, Price: 1.50}},
			TotalAmount: floatPtr(6.00),
		})
		require.NoError(t, err)

		require.NoError(t, svc.UndoSale(sale.ID))

		var got models.Product
		require.NoError(t, db.First(&got, "id = ?", cola.ID).Error)
		assert.Equal(t, 20, got.StockLevel)

		var m models.RetailerMetrics
		require.NoError(t, db.First(&m, "retailer_id = ?", retailer.ID).Error)
		assert.Zero(t, m.DailyQuotaUSD)
		// Streak survives the undo on purpose
		assert.Equal(t, 1, m.CurrentStreak)

		_, err = svc.GetSale(sale.ID)
		assert.ErrorIs(t, err, ErrSaleNotFound)
	})

	t.Run("undoing twice returns not found", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)

		sale, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 1, Price: 1.50}},
			TotalAmount: floatPtr(1.50),
		})
		require.NoError(t, err)

		require.NoError(t, svc.UndoSale(sale.ID))
		assert.ErrorIs(t, svc.UndoSale(sale.ID), ErrSaleNotFound)

		// Stock was restored exactly once
		var got models.Product
		require.NoError(t, db.First(&got, "id = ?", cola.ID).Error)
		assert.Equal(t, 20, got.StockLevel)
	})

	t.Run("skips products deleted since the sale", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 1.50)
		chips := createTestProduct(t, db, "Chips", 20, 2.00)

		sale, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID: retailer.ID,
			Items: []SaleLineItem{
				{ProductID: cola.ID, Quantity: 2, Price: 1.50},
				{ProductID: chips.ID, Quantity: 2, Price: 2.00},
			},
			TotalAmount: floatPtr(7.00),
		})
		require.NoError(t, err)

		require.NoError(t, db.Delete(&models.Product{}, "id = ?", chips.ID).Error)

		require.NoError(t, svc.UndoSale(sale.ID))

		var gotCola models.Product
		require.NoError(t, db.First(&gotCola, "id = ?", cola.ID).Error)
		assert.Equal(t, 20, gotCola.StockLevel)
	})

	t.Run("quota never goes negative", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newTestSalesService(db)
		retailer := createTestRetailer(t, db, "retailer1")
		cola := createTestProduct(t, db, "Cola", 20, 5.00)

		sale, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 1, Price: 5.00}},
			TotalAmount: floatPtr(5.00),
		})
		require.NoError(t, err)

		// Simulate a quota drained by an earlier manual correction
		require.NoError(t, db.Model(&models.RetailerMetrics{}).
			Where("retailer_id = ?", retailer.ID).
			UpdateColumn("daily_quota_usd", 2.00).Error)

		require.NoError(t, svc.UndoSale(sale.ID))

		var m models.RetailerMetrics
		require.NoError(t, db.First(&m, "retailer_id = ?", retailer.ID).Error)
		assert.Zero(t, m.DailyQuotaUSD)
	})
}

func TestGetSalesReport(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestSalesService(db)
	retailer := createTestRetailer(t, db, "retailer1")
	cola := createTestProduct(t, db, "Cola", 100, 2.00)

	for i := 0; i < 4; i++ {
		_, err := svc.RecordSale(&RecordSaleRequest{
			RetailerID:  retailer.ID,
			Items:       []SaleLineItem{{ProductID: cola.ID, Quantity: 2, Price: 2.00}},
			TotalAmount: floatPtr(4.00),
		})
		require.NoError(t, err)
	}

	report, err := svc.GetSalesReport(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 16.00, report.TotalRevenue)
	assert.Equal(t, int64(4), report.Transactions)

	// A window in the far past matches nothing
	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	pastEnd := past.AddDate(0, 0, 1)
	empty, err := svc.GetSalesReport(&past, &pastEnd)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRevenue)
	assert.Zero(t, empty.Transactions)
}
