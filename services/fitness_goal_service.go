package services

import (
	"fmt"
	"time"

	"backend/config"
	"backend/models"

	"gorm.io/gorm"
)

type FitnessGoalInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"` // YYYY-MM-DD
}

func CreateFitnessGoal(userID uint, in FitnessGoalInput) (*models.FitnessGoal, error) {
	var targetDate time.Time
	if in.TargetDate != "" {
		var err error
		targetDate, err = time.Parse("2006-01-02", in.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: target_date must be YYYY-MM-DD", ErrInvalidGoal)
		}
	}

	goal := models.FitnessGoal{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TargetDate:  targetDate,
		Status:      models.GoalActive,
	}
	if err := config.DB.Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func ListFitnessGoals(userID uint, status models.GoalStatus) ([]models.FitnessGoal, error) {
	q := config.DB.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var goals []models.FitnessGoal
	err := q.Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func UpdateFitnessGoal(userID, goalID uint, in FitnessGoalInput) (*models.FitnessGoal, error) {
	var goal models.FitnessGoal
	if err := config.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, err
	}

	if in.Title != "" {
		goal.Title = in.Title
	}
	if in.Description != "" {
		goal.Description = in.Description
	}
	if in.TargetDate != "" {
		targetDate, err := time.Parse("2006-01-02", in.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: target_date must be YYYY-MM-DD", ErrInvalidGoal)
		}
		goal.TargetDate = targetDate
	}

	if err := config.DB.Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func TransitionFitnessGoal(userID, goalID uint, to models.GoalStatus) (*models.FitnessGoal, error) {
	var goal models.FitnessGoal
	if err := config.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, err
	}

	allowed := false
	for _, s := range validTransitions[goal.Status] {
		if s == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move %s goal to %s", ErrInvalidGoal, goal.Status, to)
	}

	goal.Status = to
	if err := config.DB.Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func DeleteFitnessGoal(userID, goalID uint) error {
	res := config.DB.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.FitnessGoal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
