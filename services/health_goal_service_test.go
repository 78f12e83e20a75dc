package services

import (
	"math"
	"testing"

	"backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateHealthGoal_RejectsBadInput(t *testing.T) {
	_, err := CreateHealthGoal(1, GoalInput{Type: "", TargetValue: 70})
	assert.ErrorIs(t, err, ErrInvalidGoal)

	_, err = CreateHealthGoal(1, GoalInput{Type: "weight", TargetValue: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidGoal)

	_, err = CreateHealthGoal(1, GoalInput{Type: "weight", TargetValue: -5})
	assert.ErrorIs(t, err, ErrInvalidGoal)

	_, err = CreateHealthGoal(1, GoalInput{Type: "weight", TargetValue: 70, TargetDate: "next tuesday"})
	assert.ErrorIs(t, err, ErrInvalidGoal)
}

func TestCreateHealthGoal_DuplicateActive(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "health_goals"`).
		WithArgs(uint(7), "weight", string(models.GoalActive)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := CreateHealthGoal(7, GoalInput{Type: "weight", TargetValue: 70})
	assert.ErrorIs(t, err, ErrDuplicateActiveGoal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHealthGoal_SeedsCurrentFromLatestRecord(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "health_goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "health_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "value", "unit"}).
			AddRow(12, 7, "weight", 82.5, "kg"))
	mock.ExpectQuery(`INSERT INTO "health_goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	view, err := CreateHealthGoal(7, GoalInput{Type: "weight", TargetValue: 75})
	require.NoError(t, err)

	assert.Equal(t, 82.5, view.CurrentValue)
	assert.Equal(t, models.GoalActive, view.Status)
	// 82.5/75 overshoots; the view saturates at 100
	assert.Equal(t, 100.0, view.ProgressPct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionHealthGoal_InvalidTransition(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "health_goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "target_value", "current_value", "status"}).
			AddRow(3, 7, "weight", 75.0, 74.0, string(models.GoalCompleted)))
	mock.ExpectRollback()

	_, err := TransitionHealthGoal(7, 3, models.GoalActive)
	assert.ErrorIs(t, err, ErrInvalidGoal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionHealthGoal_ReactivateChecksUniqueness(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "health_goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "target_value", "current_value", "status"}).
			AddRow(3, 7, "weight", 75.0, 74.0, string(models.GoalPaused)))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "health_goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := TransitionHealthGoal(7, 3, models.GoalActive)
	assert.ErrorIs(t, err, ErrDuplicateActiveGoal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteHealthGoal_NotFound(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE "health_goals" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := DeleteHealthGoal(7, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClampedProgress(t *testing.T) {
	assert.Equal(t, 0.0, clampedProgress(50, 0))
	assert.Equal(t, 0.0, clampedProgress(-10, 100))
	assert.Equal(t, 50.0, clampedProgress(50, 100))
	assert.Equal(t, 100.0, clampedProgress(150, 100))
}
