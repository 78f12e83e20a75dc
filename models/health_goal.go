package models

import (
	"time"

	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// HealthGoal tracks a per-metric target. At most one active goal per
// (user, type); the service layer rejects duplicates. CurrentValue is
// refreshed from the newest matching HealthRecord.
type HealthGoal struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null"`
	Type         string `gorm:"index;size:48;not null"`
	CurrentValue float64
	TargetValue  float64 `gorm:"not null"`
	TargetDate   time.Time
	Status       GoalStatus `gorm:"size:16;default:active"`
}
