package models

import "gorm.io/gorm"

// UserPreference holds per-user display and delivery settings. One row per
// user, upserted.
type UserPreference struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex;not null"`
	UnitSystem       string `gorm:"size:16;default:metric"`     // "metric" | "imperial"
	ScoringSystem    string `gorm:"size:16;default:percentage"` // "percentage" | "z-score" | "custom"
	DashboardMetrics string `gorm:"type:text"`                  // comma separated metric slugs
	EmailReminders   bool   `gorm:"default:true"`
	PushReminders    bool   `gorm:"default:false"`
}
