package models

import (
	"time"

	"gorm.io/gorm"
)

// HealthRecord is one observed measurement (e.g. weight 72.4kg at 08:00).
// Immutable once created except for explicit correction updates.
type HealthRecord struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	Type       string    `gorm:"index;size:48;not null"` // metric slug, see scoring.MetricTypes
	Value      float64   `gorm:"not null"`
	Unit       string    `gorm:"size:16"`
	RecordedAt time.Time `gorm:"index;not null"`
}
