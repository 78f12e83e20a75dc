package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"backend/config"
	"backend/models"

	"gorm.io/gorm"
)

// ErrDuplicateActiveGoal enforces the one-active-goal-per-metric rule.
var ErrDuplicateActiveGoal = errors.New("an active goal for this metric already exists")

var ErrInvalidGoal = errors.New("invalid goal")

type GoalInput struct {
	Type        string  `json:"type" binding:"required"`
	TargetValue float64 `json:"target_value"`
	TargetDate  string  `json:"target_date"` // YYYY-MM-DD
}

// GoalView is the API shape of a goal. ProgressPct here is clamped to
// [0,100]: a saturated progress bar, not an analytics figure. The summary
// endpoints report the raw ratio instead.
type GoalView struct {
	models.HealthGoal
	ProgressPct float64 `json:"progress_pct"`
}

func clampedProgress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func viewOf(g models.HealthGoal) GoalView {
	return GoalView{HealthGoal: g, ProgressPct: clampedProgress(g.CurrentValue, g.TargetValue)}
}

// CreateHealthGoal rejects a second active goal for the same metric type.
// The new goal starts from the newest matching record value when one exists.
func CreateHealthGoal(userID uint, in GoalInput) (*GoalView, error) {
	if in.Type == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidGoal)
	}
	if math.IsNaN(in.TargetValue) || math.IsInf(in.TargetValue, 0) || in.TargetValue <= 0 {
		return nil, fmt.Errorf("%w: target_value must be a positive finite number", ErrInvalidGoal)
	}

	var targetDate time.Time
	if in.TargetDate != "" {
		var err error
		targetDate, err = time.Parse("2006-01-02", in.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: target_date must be YYYY-MM-DD", ErrInvalidGoal)
		}
	}

	goal := models.HealthGoal{
		UserID:      userID,
		Type:        in.Type,
		TargetValue: in.TargetValue,
		TargetDate:  targetDate,
		Status:      models.GoalActive,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.HealthGoal{}).
			Where("user_id = ? AND type = ? AND status = ?", userID, in.Type, models.GoalActive).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateActiveGoal
		}

		var latest models.HealthRecord
		err := tx.Where("user_id = ? AND type = ?", userID, in.Type).
			Order("recorded_at DESC").
			First(&latest).Error
		if err == nil {
			goal.CurrentValue = latest.Value
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&goal).Error
	})
	if err != nil {
		return nil, err
	}

	v := viewOf(goal)
	return &v, nil
}

func GetHealthGoal(userID, goalID uint) (*GoalView, error) {
	var goal models.HealthGoal
	if err := config.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, err
	}
	v := viewOf(goal)
	return &v, nil
}

func ListHealthGoals(userID uint, status models.GoalStatus) ([]GoalView, error) {
	q := config.DB.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var goals []models.HealthGoal
	if err := q.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}

	out := make([]GoalView, len(goals))
	for i, g := range goals {
		out[i] = viewOf(g)
	}
	return out, nil
}

// UpdateHealthGoal changes target value/date of an existing goal.
func UpdateHealthGoal(userID, goalID uint, in GoalInput) (*GoalView, error) {
	var goal models.HealthGoal
	if err := config.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, err
	}

	if in.TargetValue != 0 {
		if math.IsNaN(in.TargetValue) || math.IsInf(in.TargetValue, 0) || in.TargetValue < 0 {
			return nil, fmt.Errorf("%w: target_value must be a positive finite number", ErrInvalidGoal)
		}
		goal.TargetValue = in.TargetValue
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
	v := viewOf(goal)
	return &v, nil
}

var validTransitions = map[models.GoalStatus][]models.GoalStatus{
	models.GoalActive:    {models.GoalCompleted, models.GoalPaused},
	models.GoalPaused:    {models.GoalActive, models.GoalCompleted},
	models.GoalCompleted: {},
}

// TransitionHealthGoal moves a goal through its status enum. Reactivating a
// paused goal re-checks the uniqueness rule.
func TransitionHealthGoal(userID, goalID uint, to models.GoalStatus) (*GoalView, error) {
	var goal models.HealthGoal

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			return err
		}

		allowed := false
		for _, s := range validTransitions[goal.Status] {
			if s == to {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: cannot move %s goal to %s", ErrInvalidGoal, goal.Status, to)
		}

		if to == models.GoalActive {
			var count int64
			if err := tx.Model(&models.HealthGoal{}).
				Where("user_id = ? AND type = ? AND status = ? AND id <> ?",
					userID, goal.Type, models.GoalActive, goal.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateActiveGoal
			}
		}

		goal.Status = to
		return tx.Save(&goal).Error
	})
	if err != nil {
		return nil, err
	}

	v := viewOf(goal)
	return &v, nil
}

func DeleteHealthGoal(userID, goalID uint) error {
	res := config.DB.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.HealthGoal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
