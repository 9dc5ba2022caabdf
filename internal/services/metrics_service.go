// internal/services/metrics_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/models"
)

// MetricsService exposes read access to retailer gamification metrics. All
// writes go through the sale apply/undo paths.
type MetricsService struct {
	db *gorm.DB
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

func (s *MetricsService) GetRetailerMetrics(retailerID uuid.UUID) (*models.RetailerMetrics, error) {
	var m models.RetailerMetrics
	if err := s.db.First(&m, "retailer_id = ?", retailerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetricsNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &m, nil
}

// GetLeaderboard returns the top retailers by cumulative quota.
func (s *MetricsService) GetLeaderboard(limit int) ([]models.RetailerMetrics, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var metrics []models.RetailerMetrics
	if err := s.db.Order("daily_quota_usd DESC").Limit(limit).Find(&metrics).Error; err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	return metrics, nil
}
