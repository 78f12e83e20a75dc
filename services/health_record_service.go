package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"backend/config"
	"backend/models"
	"backend/scoring"

	"gorm.io/gorm"
)

var ErrInvalidRecord = errors.New("invalid health record")

// RecordInput is the create/correct payload for a measurement.
type RecordInput struct {
	Type       string  `json:"type" binding:"required"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	RecordedAt string  `json:"recorded_at"` // RFC3339 or YYYY-MM-DD; empty = now
}

func parseRecordedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: unparsable recorded_at %q", ErrInvalidRecord, s)
}

func validateRecordInput(in RecordInput) error {
	if in.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidRecord)
	}
	if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
		return fmt.Errorf("%w: value must be finite", ErrInvalidRecord)
	}
	if in.Value < 0 {
		return fmt.Errorf("%w: value must be non-negative", ErrInvalidRecord)
	}
	return nil
}

// CreateHealthRecord stores a measurement and, in the same transaction,
// refreshes the current value of the matching active goal.
func CreateHealthRecord(userID uint, in RecordInput) (*models.HealthRecord, error) {
	if err := validateRecordInput(in); err != nil {
		return nil, err
	}
	recordedAt, err := parseRecordedAt(in.RecordedAt)
	if err != nil {
		return nil, err
	}

	unit := in.Unit
	if unit == "" {
		unit = scoring.MetricUnit(in.Type)
	}

	rec := &models.HealthRecord{
		UserID:     userID,
		Type:       in.Type,
		Value:      in.Value,
		Unit:       unit,
		RecordedAt: recordedAt,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return refreshGoalCurrentValue(tx, userID, in.Type)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// CorrectHealthRecord updates a record's value/time. Records are otherwise
// immutable; this exists for fixing bad entries.
func CorrectHealthRecord(userID, recordID uint, in RecordInput) (*models.HealthRecord, error) {
	if err := validateRecordInput(in); err != nil {
		return nil, err
	}
	recordedAt, err := parseRecordedAt(in.RecordedAt)
	if err != nil {
		return nil, err
	}

	var rec models.HealthRecord
	if err := config.DB.Where("id = ? AND user_id = ?", recordID, userID).First(&rec).Error; err != nil {
		return nil, err
	}

	rec.Value = in.Value
	rec.RecordedAt = recordedAt
	if in.Unit != "" {
		rec.Unit = in.Unit
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return refreshGoalCurrentValue(tx, userID, rec.Type)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func DeleteHealthRecord(userID, recordID uint) error {
	var rec models.HealthRecord
	if err := config.DB.Where("id = ? AND user_id = ?", recordID, userID).First(&rec).Error; err != nil {
		return err
	}
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}
		return refreshGoalCurrentValue(tx, userID, rec.Type)
	})
}

// ListHealthRecords filters by optional type and date range, newest first.
func ListHealthRecords(userID uint, metricType string, from, to time.Time) ([]models.HealthRecord, error) {
	q := config.DB.Where("user_id = ?", userID)
	if metricType != "" {
		q = q.Where("type = ?", metricType)
	}
	if !from.IsZero() {
		q = q.Where("recorded_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("recorded_at <= ?", to)
	}

	var recs []models.HealthRecord
	err := q.Order("recorded_at DESC").Find(&recs).Error
	return recs, err
}

// refreshGoalCurrentValue copies the newest record value of the type onto
// the active goal of the same type, if one exists. No matching goal is not
// an error.
func refreshGoalCurrentValue(tx *gorm.DB, userID uint, metricType string) error {
	var goal models.HealthGoal
	err := tx.Where("user_id = ? AND type = ? AND status = ?", userID, metricType, models.GoalActive).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var latest models.HealthRecord
	err = tx.Where("user_id = ? AND type = ?", userID, metricType).
		Order("recorded_at DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal.CurrentValue = 0
	} else if err != nil {
		return err
	} else {
		goal.CurrentValue = latest.Value
	}

	return tx.Save(&goal).Error
}
