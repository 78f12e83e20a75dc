package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID    string `gorm:"uniqueIndex;size:64"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string
	Birthday  time.Time
	Gender    string `gorm:"size:16"` // "male" | "female" | "other"

	// Profile context used to personalize scoring ranges.
	Height          float64 // cm
	Weight          float64 // kg
	ActivityLevel   string  `gorm:"size:32"` // "sedentary" | "light" | "moderate" | "active" | "very_active"
	FitnessLevel    string  `gorm:"size:32"` // "beginner" | "intermediate" | "advanced"
	ExperienceYears int
	Timezone        string `gorm:"size:64"`

	ProfilePicture string
	Onboarded      bool
	Disabled       bool `gorm:"default:false"`

	MFAEnabled    bool
	MFACode       string
	ResetToken    string
	ResetTokenExp time.Time
}
