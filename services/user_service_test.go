package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
)

func TestProfileCompleteness(t *testing.T) {
	assert.Equal(t, 0, ProfileCompleteness(&models.User{}))

	full := &models.User{
		FitnessLevel:    "intermediate",
		ExperienceYears: 3,
		Timezone:        "Europe/Berlin",
		Birthday:        time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Height:          178,
		Weight:          74,
		ActivityLevel:   "moderate",
	}
	assert.Equal(t, 100, ProfileCompleteness(full))

	partial := &models.User{
		FitnessLevel: "beginner",
		Height:       178,
		Weight:       74,
	}
	// 3 of 7 fields
	assert.Equal(t, 43, ProfileCompleteness(partial))
}
