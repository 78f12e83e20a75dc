package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder fires on a cron schedule. Deactivating flips Active instead of
// deleting the row so history survives.
type Reminder struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Type      string    `gorm:"size:48"` // metric slug or "custom"
	CronExpr  string    `gorm:"size:64;not null"`
	Message   string    `gorm:"type:text"`
	Active    bool      `gorm:"default:true"`
	NextRunAt time.Time `gorm:"index"`
}
