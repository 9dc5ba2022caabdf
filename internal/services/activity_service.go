// internal/services/activity_service.go
package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/models"
)

// ActivityService is the append-only recorder of domain events. It is a pure
// side-effect sink: writes are best-effort and failures are logged and
// suppressed so they can never abort the operation being recorded.
type ActivityService struct {
	db *gorm.DB
}

type ActivityFilter struct {
	Limit      int
	UserID     *uuid.UUID
	ProductID  *uuid.UUID
	ActionType string
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// LogProductAction records a product-scoped action (Restock, Sale, Dispose,
// DELETE). Both IDs are nullable: productID is nil for sale-level events,
// userID for anonymous API callers.
func (s *ActivityService) LogProductAction(productID, userID *uuid.UUID, actionType, notes string) {
	s.append(&models.ActivityLog{
		ProductID:  productID,
		UserID:     userID,
		ActionType: actionType,
		Notes:      notes,
		LogTime:    time.Now().UTC(),
	})
}

// LogUserAction records a general user action (login, user management,
// category management) with a JSON notes envelope.
func (s *ActivityService) LogUserAction(userID *uuid.UUID, action, target, source string, details map[string]interface{}) {
	envelope := map[string]interface{}{
		"action": action,
		"target": target,
		"source": source,
	}
	if details != nil {
		envelope["details"] = details
	}
	notes, err := json.Marshal(envelope)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode activity notes")
		return
	}

	s.append(&models.ActivityLog{
		UserID:     userID,
		ActionType: action,
		Notes:      string(notes),
		LogTime:    time.Now().UTC(),
	})
}

// LogAPIOperation records a raw API mutation (method + path tag), with the
// caller's IP in the notes envelope.
func (s *ActivityService) LogAPIOperation(method, path, ipAddress string, userID *uuid.UUID) {
	envelope := map[string]interface{}{
		"method":     method,
		"path":       path,
		"source":     models.SourceAPI,
		"ip_address": ipAddress,
	}
	notes, err := json.Marshal(envelope)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode activity notes")
		return
	}

	s.append(&models.ActivityLog{
		UserID:     userID,
		ActionType: method + " " + path,
		Notes:      string(notes),
		LogTime:    time.Now().UTC(),
	})
}

// Recent returns the newest log rows matching the filter.
func (s *ActivityService) Recent(filter ActivityFilter) ([]models.ActivityLog, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := s.db.Model(&models.ActivityLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}

	var logs []models.ActivityLog
	if err := query.Order("log_time DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *ActivityService) append(entry *models.ActivityLog) {
	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).WithField("action", entry.ActionType).
			Warn("Failed to write activity log entry")
	}
}
