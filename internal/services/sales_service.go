// internal/services/sales_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/metrics"
	"github.com/stockadoodle/backend/internal/models"
)

// totalTolerance is how far the caller-declared total may drift from the
// recomputed sum of line items before the sale is rejected.
const totalTolerance = 0.01

type SalesService struct {
	db       *gorm.DB
	activity *ActivityService

	now func() time.Time
}

type SaleLineItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required"`
	Price     float64   `json:"price" validate:"min=0"`
}

type RecordSaleRequest struct {
	RetailerID  uuid.UUID      `json:"retailer_id" validate:"required"`
	Items       []SaleLineItem `json:"items" validate:"required"`
	TotalAmount *float64       `json:"total_amount" validate:"required"`
}

type SalesReport struct {
	TotalRevenue float64    `json:"total_revenue"`
	Transactions int64      `json:"transactions"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

func NewSalesService(db *gorm.DB, activity *ActivityService) *SalesService {
	return &SalesService{
		db:       db,
		activity: activity,
		now:      time.Now,
	}
}

// RecordSale validates and applies a multi-line sale as a single
// all-or-nothing transaction: per-item stock checks and decrements, the sale
// row with its line-item snapshot, and the retailer metrics update either all
// commit together or none do. Activity rows are written after the commit,
// best-effort, so a logging failure can never abort a completed sale.
func (s *SalesService) RecordSale(req *RecordSaleRequest) (*models.Sale, error) {
	if req == nil || len(req.Items) == 0 || req.TotalAmount == nil {
		return nil, ErrInvalidPayload
	}

	// The caller-declared total is not trusted; recompute it from the line
	// items and reject anything beyond a cent of drift.
	var computed float64
	for _, item := range req.Items {
		computed += item.Price * float64(item.Quantity)
	}
	if math.Abs(computed-*req.TotalAmount) > totalTolerance {
		return nil, fmt.Errorf("%w: declared %.2f, computed %.2f", ErrTotalMismatch, *req.TotalAmount, computed)
	}

	sale := &models.Sale{
		RetailerID:  req.RetailerID,
		TotalAmount: *req.TotalAmount,
	}
	if err := sale.SetItems(toModelItems(req.Items)); err != nil {
		return nil, fmt.Errorf("failed to snapshot line items: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var retailer models.User
		if err := tx.First(&retailer, "id = ?", req.RetailerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		for _, item := range req.Items {
			if item.Quantity <= 0 {
				return fmt.Errorf("%w for product %s", ErrInvalidQuantity, item.ProductID)
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
				}
				return fmt.Errorf("database error: %w", err)
			}

			if product.StockLevel < item.Quantity {
				return fmt.Errorf("%w for product %s", ErrInsufficientStock, product.Name)
			}

			// Conditional decrement guards against a concurrent sale that
			// drained the stock between the read above and this write.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_level >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_level", gorm.Expr("stock_level - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to update stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %s", ErrConcurrencyConflict, product.Name)
			}
		}

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		retailerMetrics, err := loadOrCreateMetrics(tx, req.RetailerID)
		if err != nil {
			return err
		}
		retailerMetrics.RecordSale(*req.TotalAmount, s.now())
		if err := tx.Save(retailerMetrics).Error; err != nil {
			return fmt.Errorf("failed to update retailer metrics: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		productID := item.ProductID
		retailerID := req.RetailerID
		s.activity.LogProductAction(&productID, &retailerID, models.ActionSale,
			fmt.Sprintf("Qty %d", item.Quantity))
	}
	metrics.RecordSale(*req.TotalAmount)

	return sale, nil
}

// UndoSale reverses a recorded sale: recorded quantities are returned to the
// surviving products, the retailer's quota is decremented (floored at zero)
// and the sale row is deleted, all in one transaction. Products deleted since
// the sale are skipped silently; the streak is intentionally not recomputed.
func (s *SalesService) UndoSale(saleID uuid.UUID) error {
	var sale models.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		for _, item := range sale.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_level", gorm.Expr("stock_level + ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to restore stock: %w", res.Error)
			}
			// RowsAffected == 0 means the product was deleted after the
			// sale; restoring its stock is impossible, so skip it.
		}

		var retailerMetrics models.RetailerMetrics
		err := tx.First(&retailerMetrics, "retailer_id = ?", sale.RetailerID).Error
		if err == nil {
			retailerMetrics.ReverseSale(sale.TotalAmount)
			if err := tx.Save(&retailerMetrics).Error; err != nil {
				return fmt.Errorf("failed to update retailer metrics: %w", err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Delete(&models.Sale{}, "id = ?", saleID).Error; err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	retailerID := sale.RetailerID
	s.activity.LogProductAction(nil, &retailerID, models.ActionSaleUndo,
		fmt.Sprintf("Sale %s undone, total %.2f", saleID, sale.TotalAmount))
	metrics.RecordSaleUndo()

	return nil
}

func (s *SalesService) GetSale(saleID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.First(&sale, "id = ?", saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &sale, nil
}

// GetSalesReport aggregates revenue and transaction count over an optional
// date range.
func (s *SalesService) GetSalesReport(start, end *time.Time) (*SalesReport, error) {
	query := s.db.Model(&models.Sale{})
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var result struct {
		Total float64
		Count int64
	}
	if err := query.Select("COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	return &SalesReport{
		TotalRevenue: result.Total,
		Transactions: result.Count,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

func (s *SalesService) CountSales() (int64, error) {
	var count int64
	err := s.db.Model(&models.Sale{}).Count(&count).Error
	return count, err
}

func loadOrCreateMetrics(tx *gorm.DB, retailerID uuid.UUID) (*models.RetailerMetrics, error) {
	var m models.RetailerMetrics
	err := tx.First(&m, "retailer_id = ?", retailerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.RetailerMetrics{RetailerID: retailerID}
		if err := tx.Create(&m).Error; err != nil {
			return nil, fmt.Errorf("failed to create retailer metrics: %w", err)
		}
		return &m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &m, nil
}

func toModelItems(items []SaleLineItem) []models.SaleItem {
	out := make([]models.SaleItem, len(items))
	for i, item := range items {
		out[i] = models.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return out
}
