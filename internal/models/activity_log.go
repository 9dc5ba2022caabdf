// internal/models/activity_log.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is the append-only audit trail. ProductID is null for
// non-product actions (user management, raw API calls); UserID is null for
// anonymous API callers. Rows are never updated or deleted.
type ActivityLog struct {
	BaseModel
	ProductID  *uuid.UUID `json:"product_id,omitempty" gorm:"type:uuid;index"`
	UserID     *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	ActionType string     `json:"action_type" gorm:"size:255;not null"`
	Notes      string     `json:"notes,omitempty" gorm:"type:text"`
	LogTime    time.Time  `json:"log_time" gorm:"not null;index"`
}
