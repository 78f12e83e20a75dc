package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPreferences_DefaultsWhenMissing(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "user_preferences"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"})) // no row yet

	pref, err := GetPreferences(7)
	require.NoError(t, err)

	assert.Equal(t, "metric", pref.UnitSystem)
	assert.Equal(t, "percentage", pref.ScoringSystem)
	assert.True(t, pref.EmailReminders)
	assert.False(t, pref.PushReminders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertPreferences_RejectsUnknownValues(t *testing.T) {
	_, err := UpsertPreferences(7, PreferenceInput{UnitSystem: "nautical"})
	assert.ErrorIs(t, err, ErrInvalidPreference)

	_, err = UpsertPreferences(7, PreferenceInput{ScoringSystem: "vibes"})
	assert.ErrorIs(t, err, ErrInvalidPreference)
}

func TestUpsertPreferences_MergesPartialInput(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "user_preferences"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "unit_system", "scoring_system", "email_reminders", "push_reminders"}).
			AddRow(1, 7, "metric", "percentage", true, false))
	mock.ExpectExec(`UPDATE "user_preferences"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	push := true
	pref, err := UpsertPreferences(7, PreferenceInput{ScoringSystem: "z-score", PushReminders: &push})
	require.NoError(t, err)

	assert.Equal(t, "z-score", pref.ScoringSystem)
	assert.Equal(t, "metric", pref.UnitSystem) // untouched
	assert.True(t, pref.PushReminders)
	assert.True(t, pref.EmailReminders)
	assert.NoError(t, mock.ExpectationsWereMet())
}
