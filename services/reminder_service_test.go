package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateCronExpr(t *testing.T) {
	// Monday 2026-01-05 07:00 UTC
	after := time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC)

	next, err := ValidateCronExpr("0 8 * * *", after)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), next)

	next, err = ValidateCronExpr("*/15 * * * *", after.Add(7*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 7, 15, 0, 0, time.UTC), next)

	next, err = ValidateCronExpr("@daily", after)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), next)

	// same Monday, later that morning
	next, err = ValidateCronExpr("0 8 * * MON", after)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), next)

	_, err = ValidateCronExpr("every morning", after)
	assert.ErrorIs(t, err, ErrInvalidReminder)

	_, err = ValidateCronExpr("", after)
	assert.ErrorIs(t, err, ErrInvalidReminder)
}

func reminderRows(id, userID uint, typ, expr string, nextRun time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "type", "cron_expr", "message", "active", "next_run_at"}).
		AddRow(id, userID, typ, expr, "", true, nextRun)
}

func TestFireDue_DispatchesAndAdvances(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	now := time.Date(2026, 1, 5, 8, 0, 30, 0, time.UTC)
	prevRun := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "reminders"`).
		WillReturnRows(reminderRows(1, 7, "weight", "0 8 * * *", prevRun))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reminders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "alerts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	// user opted out of both channels; nothing else should fire
	mock.ExpectQuery(`SELECT \* FROM "user_preferences"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "email_reminders", "push_reminders"}).
			AddRow(1, 7, false, false))
	mock.ExpectCommit()

	sched := NewReminderScheduler(gdb, zap.NewNop())
	require.NoError(t, sched.FireDue(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFireDue_SkipsAlreadyClaimedOccurrence(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	now := time.Date(2026, 1, 5, 8, 0, 30, 0, time.UTC)
	prevRun := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "reminders"`).
		WillReturnRows(reminderRows(1, 7, "weight", "0 8 * * *", prevRun))

	mock.ExpectBegin()
	// another instance advanced next_run_at first
	mock.ExpectExec(`UPDATE "reminders"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	sched := NewReminderScheduler(gdb, zap.NewNop())
	require.NoError(t, sched.FireDue(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFireDue_DeactivatesBadExpression(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	now := time.Date(2026, 1, 5, 8, 0, 30, 0, time.UTC)
	prevRun := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "reminders"`).
		WillReturnRows(reminderRows(1, 7, "weight", "whenever", prevRun))

	mock.ExpectExec(`UPDATE "reminders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sched := NewReminderScheduler(gdb, zap.NewNop())
	require.NoError(t, sched.FireDue(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}
