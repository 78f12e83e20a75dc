package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"backend/config"
	"backend/models"
	"backend/scoring"
	"backend/utils"
)

type ProfileInput struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Birthday        string  `json:"birthday"` // YYYY-MM-DD
	Gender          string  `json:"gender"`
	Height          float64 `json:"height"`
	Weight          float64 `json:"weight"`
	ActivityLevel   string  `json:"activity_level"`
	FitnessLevel    string  `json:"fitness_level"`
	ExperienceYears int     `json:"experience_years"`
	Timezone        string  `json:"timezone"`
	ProfilePicture  string  `json:"profile_picture"`
	Onboarded       bool    `json:"onboarded"`
}

// profileFields is the fixed set counted for completeness.
const profileFields = 7

// ProfileCompleteness counts the filled fields of {fitness level, experience
// years, timezone, date of birth, height, weight, activity level} and
// returns a rounded percentage.
func ProfileCompleteness(user *models.User) int {
	done := 0
	if user.FitnessLevel != "" {
		done++
	}
	if user.ExperienceYears > 0 {
		done++
	}
	if user.Timezone != "" {
		done++
	}
	if !user.Birthday.IsZero() {
		done++
	}
	if user.Height > 0 {
		done++
	}
	if user.Weight > 0 {
		done++
	}
	if user.ActivityLevel != "" {
		done++
	}
	return int(math.Round(float64(done) / profileFields * 100))
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	out := map[string]interface{}{
		"id":               user.ID,
		"user_id":          user.UserID,
		"email":            user.Email,
		"first_name":       user.FirstName,
		"last_name":        user.LastName,
		"birthday":         user.Birthday.Format("2006-01-02"),
		"age":              age,
		"gender":           user.Gender,
		"height":           user.Height,
		"weight":           user.Weight,
		"activity_level":   user.ActivityLevel,
		"fitness_level":    user.FitnessLevel,
		"experience_years": user.ExperienceYears,
		"timezone":         user.Timezone,
		"profile_picture":  user.ProfilePicture,
		"mfa_enabled":      user.MFAEnabled,
		"onboarded":        user.Onboarded,
		"completeness":     ProfileCompleteness(&user),
	}

	if bmi, err := utils.CalculateBMI(user.Height, user.Weight); err == nil {
		out["bmi"] = math.Round(bmi*10) / 10
		out["bmi_category"] = utils.BMICategory(bmi)
	}

	return out, nil
}

func UpdateUserProfile(email string, input ProfileInput) error {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
		}
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.ActivityLevel != "" {
		user.ActivityLevel = input.ActivityLevel
	}
	if input.FitnessLevel != "" {
		user.FitnessLevel = input.FitnessLevel
	}
	if input.ExperienceYears > 0 {
		user.ExperienceYears = input.ExperienceYears
	}
	if input.Timezone != "" {
		user.Timezone = input.Timezone
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		user.ProfilePicture = url
	}

	user.Onboarded = input.Onboarded

	return config.DB.Save(&user).Error
}

func DeleteUser(email string) error {
	var user models.User
	result := config.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return result.Error
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}

// ScoringProfileFor assembles the personalization context the scoring
// package consumes: demographics from the user row plus active goal targets.
func ScoringProfileFor(userID uint) *scoring.Profile {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil
	}

	var goals []models.HealthGoal
	_ = config.DB.Where("user_id = ? AND status = ?", userID, models.GoalActive).Find(&goals).Error

	targets := make(map[string]float64, len(goals))
	for _, g := range goals {
		if g.TargetValue > 0 {
			targets[g.Type] = g.TargetValue
		}
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	return &scoring.Profile{
		Age:           age,
		Gender:        user.Gender,
		Height:        user.Height,
		Weight:        user.Weight,
		ActivityLevel: user.ActivityLevel,
		Goals:         targets,
	}
}
