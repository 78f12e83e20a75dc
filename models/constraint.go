package models

import "gorm.io/gorm"

// HealthConstraint records a medical or lifestyle limitation that the
// dashboard surfaces alongside recommendations. Soft-deactivated, never
// physically deleted.
type HealthConstraint struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Kind        string `gorm:"size:32;not null"` // "injury" | "condition" | "dietary" | "schedule"
	Description string `gorm:"type:text"`
	Severity    string `gorm:"size:16"` // "low" | "medium" | "high"
	Active      bool   `gorm:"default:true"`
}
