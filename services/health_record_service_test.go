package services

import (
	"math"
	"testing"

	"backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecordInput(t *testing.T) {
	cases := []struct {
		name string
		in   RecordInput
	}{
		{"missing type", RecordInput{Value: 70}},
		{"nan value", RecordInput{Type: "weight", Value: math.NaN()}},
		{"inf value", RecordInput{Type: "weight", Value: math.Inf(1)}},
		{"negative value", RecordInput{Type: "weight", Value: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, validateRecordInput(tc.in), ErrInvalidRecord)
		})
	}

	assert.NoError(t, validateRecordInput(RecordInput{Type: "steps", Value: 0}))
}

func TestParseRecordedAt(t *testing.T) {
	ts, err := parseRecordedAt("2026-03-15T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, ts.Hour())

	ts, err = parseRecordedAt("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 15, ts.Day())

	_, err = parseRecordedAt("15/03/2026")
	assert.ErrorIs(t, err, ErrInvalidRecord)

	ts, err = parseRecordedAt("")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}

func TestCreateHealthRecord_RefreshesActiveGoal(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "health_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectQuery(`SELECT \* FROM "health_goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "target_value", "current_value", "status"}).
			AddRow(3, 7, "weight", 75.0, 80.0, string(models.GoalActive)))
	mock.ExpectQuery(`SELECT \* FROM "health_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "value"}).
			AddRow(21, 7, "weight", 79.2))
	mock.ExpectExec(`UPDATE "health_goals"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := CreateHealthRecord(7, RecordInput{Type: "weight", Value: 79.2, RecordedAt: "2026-03-15"})
	require.NoError(t, err)

	assert.Equal(t, uint(21), rec.ID)
	assert.Equal(t, "kg", rec.Unit) // unit defaulted from the metric table
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHealthRecord_NoActiveGoalIsFine(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "health_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))
	mock.ExpectQuery(`SELECT \* FROM "health_goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"})) // no rows
	mock.ExpectCommit()

	_, err := CreateHealthRecord(7, RecordInput{Type: "steps", Value: 9000})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
