package services

import (
	"errors"
	"fmt"

	"backend/config"
	"backend/models"

	"gorm.io/gorm"
)

var ErrInvalidConstraint = errors.New("invalid constraint")

var constraintKinds = map[string]bool{
	"injury": true, "condition": true, "dietary": true, "schedule": true,
}

type ConstraintInput struct {
	Kind        string `json:"kind" binding:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func CreateConstraint(userID uint, in ConstraintInput) (*models.HealthConstraint, error) {
	if !constraintKinds[in.Kind] {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidConstraint, in.Kind)
	}
	severity := in.Severity
	if severity == "" {
		severity = "medium"
	}

	c := models.HealthConstraint{
		UserID:      userID,
		Kind:        in.Kind,
		Description: in.Description,
		Severity:    severity,
		Active:      true,
	}
	if err := config.DB.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func ListConstraints(userID uint, includeInactive bool) ([]models.HealthConstraint, error) {
	q := config.DB.Where("user_id = ?", userID)
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var out []models.HealthConstraint
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func UpdateConstraint(userID, id uint, in ConstraintInput) (*models.HealthConstraint, error) {
	var c models.HealthConstraint
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&c).Error; err != nil {
		return nil, err
	}

	if in.Kind != "" {
		if !constraintKinds[in.Kind] {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidConstraint, in.Kind)
		}
		c.Kind = in.Kind
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Severity != "" {
		c.Severity = in.Severity
	}

	if err := config.DB.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// DeactivateConstraint flips the active flag. Constraints are never
// physically removed so history stays auditable.
func DeactivateConstraint(userID, id uint) error {
	res := config.DB.Model(&models.HealthConstraint{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
