package services

import (
	"errors"
	"fmt"

	"backend/config"
	"backend/models"
	"backend/scoring"

	"gorm.io/gorm"
)

var ErrInvalidPreference = errors.New("invalid preference")

type PreferenceInput struct {
	UnitSystem       string `json:"unit_system"`
	ScoringSystem    string `json:"scoring_system"`
	DashboardMetrics string `json:"dashboard_metrics"`
	EmailReminders   *bool  `json:"email_reminders"`
	PushReminders    *bool  `json:"push_reminders"`
}

func GetPreferences(userID uint) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := config.DB.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// defaults without persisting; first write creates the row
		return &models.UserPreference{
			UserID:         userID,
			UnitSystem:     "metric",
			ScoringSystem:  string(scoring.SystemPercentage),
			EmailReminders: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// UpsertPreferences merges the given fields into the user's single
// preference row, creating it on first write.
func UpsertPreferences(userID uint, in PreferenceInput) (*models.UserPreference, error) {
	if in.UnitSystem != "" && in.UnitSystem != "metric" && in.UnitSystem != "imperial" {
		return nil, fmt.Errorf("%w: unit_system must be metric or imperial", ErrInvalidPreference)
	}
	switch scoring.System(in.ScoringSystem) {
	case "", scoring.SystemPercentage, scoring.SystemZScore, scoring.SystemCustom:
	default:
		return nil, fmt.Errorf("%w: unknown scoring_system %q", ErrInvalidPreference, in.ScoringSystem)
	}

	var pref models.UserPreference
	err := config.DB.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.UserPreference{
			UserID:         userID,
			UnitSystem:     "metric",
			ScoringSystem:  string(scoring.SystemPercentage),
			EmailReminders: true,
		}
	} else if err != nil {
		return nil, err
	}

	if in.UnitSystem != "" {
		pref.UnitSystem = in.UnitSystem
	}
	if in.ScoringSystem != "" {
		pref.ScoringSystem = in.ScoringSystem
	}
	if in.DashboardMetrics != "" {
		pref.DashboardMetrics = in.DashboardMetrics
	}
	if in.EmailReminders != nil {
		pref.EmailReminders = *in.EmailReminders
	}
	if in.PushReminders != nil {
		pref.PushReminders = *in.PushReminders
	}

	if err := config.DB.Save(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}
