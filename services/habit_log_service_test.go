package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"trackit-app/trackit/models"
	"trackit-app/trackit/testutils"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	assert.NoError(t, err)
	return d
}

// lookupFromSet builds a hasLog closure over a fixed set of dates.
func lookupFromSet(dates ...string) func(models.Date) (bool, error) {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return func(d models.Date) (bool, error) {
		return set[d.String()], nil
	}
}

func TestCurrentStreak_NoLogs(t *testing.T) {
	streak, err := currentStreak(models.FrequencyDaily, mustDate(t, "2025-03-12"), lookupFromSet())
	assert.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestCurrentStreak_ConsecutiveDays(t *testing.T) {
	streak, err := currentStreak(models.FrequencyDaily, mustDate(t, "2025-03-12"),
		lookupFromSet("2025-03-10", "2025-03-11", "2025-03-12"))
	assert.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestCurrentStreak_GapStopsCount(t *testing.T) {
	// Logged today and two days ago, but not yesterday.
	streak, err := currentStreak(models.FrequencyDaily, mustDate(t, "2025-03-12"),
		lookupFromSet("2025-03-10", "2025-03-12"))
	assert.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestCurrentStreak_Weekly(t *testing.T) {
	// 2025-03-12 is a Wednesday; week starts are 03-10, 03-03, 02-24.
	streak, err := currentStreak(models.FrequencyWeekly, mustDate(t, "2025-03-12"),
		lookupFromSet("2025-03-10", "2025-03-03"))
	assert.NoError(t, err)
	assert.Equal(t, 2, streak)

	// A gap at the current week start yields zero even with older logs.
	streak, err = currentStreak(models.FrequencyWeekly, mustDate(t, "2025-03-12"),
		lookupFromSet("2025-03-03"))
	assert.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestWeeklyProgressFrom(t *testing.T) {
	today := mustDate(t, "2025-03-12")
	logs := []models.HabitLog{
		{LogDate: mustDate(t, "2025-03-12")},
		{LogDate: mustDate(t, "2025-03-10")},
	}

	progress := weeklyProgressFrom(logs, today)

	assert.Len(t, progress, 7)
	assert.Equal(t, 1, progress["2025-03-12"])
	assert.Equal(t, 1, progress["2025-03-10"])
	assert.Equal(t, 0, progress["2025-03-11"])
	assert.Equal(t, 0, progress["2025-03-06"])
}

func TestLogHabit_HabitNotFound(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	habitID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "habits" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(habitID.String(), userID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	service := &HabitLogService{}
	_, err := service.LogHabit(db, userID, habitID.String())
	assert.ErrorIs(t, err, ErrHabitNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogHabit_AlreadyLoggedToday(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	habitID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "habits" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(habitID.String(), userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "frequency"}).
			AddRow(habitID.String(), userID.String(), "Read", "DAILY"))

	// The unique index on (habit_id, log_date) rejects the second same-day row.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "habit_logs"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	service := &HabitLogService{}
	_, err := service.LogHabit(db, userID, habitID.String())
	assert.ErrorIs(t, err, ErrAlreadyLogged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogHabit_Success(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	habitID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "habits" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(habitID.String(), userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "frequency"}).
			AddRow(habitID.String(), userID.String(), "Read", "DAILY"))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "habit_logs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "events"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	service := &HabitLogService{}
	log, err := service.LogHabit(db, userID, habitID.String())
	assert.NoError(t, err)
	assert.Equal(t, habitID, log.HabitID)
	assert.Equal(t, models.Today(), log.LogDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
