// internal/services/inventory_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/models"
)

type InventoryService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewInventoryService(db *gorm.DB, activity *ActivityService) *InventoryService {
	return &InventoryService{db: db, activity: activity}
}

// AdjustStock adds delta to a product's stock level, flooring the result at
// zero (disposal of more than is on hand empties the shelf rather than
// erroring). One activity row is appended best-effort.
func (s *InventoryService) AdjustStock(productID uuid.UUID, delta int, actingUserID *uuid.UUID, actionType, notes string) (*models.Product, error) {
	var product models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		newLevel := product.StockLevel + delta
		if newLevel < 0 {
			newLevel = 0
		}
		product.StockLevel = newLevel

		if err := tx.Model(&product).UpdateColumn("stock_level", newLevel).Error; err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.LogProductAction(&productID, actingUserID, actionType, notes)
	return &product, nil
}

// GetLowStock returns products under their reorder threshold.
func (s *InventoryService) GetLowStock() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("stock_level < min_stock_level").
		Order("stock_level ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}
	return products, nil
}

// GetExpiring returns products whose expiration date falls within the next
// `days` days.
func (s *InventoryService) GetExpiring(days int) ([]models.Product, error) {
	if days <= 0 {
		days = 7
	}
	limit := time.Now().UTC().AddDate(0, 0, days)

	var products []models.Product
	err := s.db.Where("expiration_date IS NOT NULL AND expiration_date <= ?", limit).
		Order("expiration_date ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring products: %w", err)
	}
	return products, nil
}

func (s *InventoryService) CountLowStock() (int64, error) {
	var count int64
	err := s.db.Model(&models.Product{}).
		Where("stock_level < min_stock_level").Count(&count).Error
	return count, err
}

func (s *InventoryService) CountExpiring(days int) (int64, error) {
	if days <= 0 {
		days = 7
	}
	limit := time.Now().UTC().AddDate(0, 0, days)

	var count int64
	err := s.db.Model(&models.Product{}).
		Where("expiration_date IS NOT NULL AND expiration_date <= ?", limit).Count(&count).Error
	return count, err
}
