// internal/models/retailer_metrics.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// RetailerMetrics is the per-retailer gamification row, created lazily on the
// first sale (or at user creation for Retailer-role users) and mutated only
// by sale application and sale undo.
type RetailerMetrics struct {
	BaseModel
	RetailerID uuid.UUID `json:"retailer_id" gorm:"type:uuid;uniqueIndex;not null"`
	// Cumulative dollar figure. Despite the name it is never reset; the
	// upstream system accumulates it forever and no reset rule has been
	// specified.
	DailyQuotaUSD float64    `json:"daily_quota_usd" gorm:"type:decimal(12,2);not null;default:0"`
	CurrentStreak int        `json:"current_streak" gorm:"not null;default:0"`
	LastSaleDate  *time.Time `json:"last_sale_date,omitempty" gorm:"type:date"`
}

// RecordSale applies one completed sale to the metrics. Streak rules: the
// first-ever sale starts the streak at 1; a repeat sale on the same day
// leaves it unchanged; a sale exactly one calendar day after the last one
// increments it; anything else (gap of two or more days, or a last-sale date
// in the future from clock skew) resets it to 1.
func (m *RetailerMetrics) RecordSale(total float64, now time.Time) {
	m.DailyQuotaUSD += total

	today := dateOnly(now)
	switch {
	case m.LastSaleDate == nil:
		m.CurrentStreak = 1
	case sameDate(*m.LastSaleDate, today):
		// repeat sale, streak untouched
	case sameDate(today.AddDate(0, 0, -1), *m.LastSaleDate):
		m.CurrentStreak++
	default:
		m.CurrentStreak = 1
	}
	m.LastSaleDate = &today
}

// ReverseSale compensates an undone sale. Only the quota is reversed, floored
// at zero; streak and last-sale date are intentionally left untouched.
func (m *RetailerMetrics) ReverseSale(total float64) {
	m.DailyQuotaUSD -= total
	if m.DailyQuotaUSD < 0 {
		m.DailyQuotaUSD = 0
	}
}

func dateOnly(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
