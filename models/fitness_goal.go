package models

import (
	"time"

	"gorm.io/gorm"
)

// FitnessGoal is a free-form training objective ("run a 10k"), unlike
// HealthGoal which targets a numeric metric.
type FitnessGoal struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	TargetDate  time.Time
	Status      GoalStatus `gorm:"size:16;default:active"`
}
