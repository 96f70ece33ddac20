package dates

import (
	"testing"

	"trackit-app/trackit/models"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	assert.NoError(t, err)
	return d
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		day      string
		expected string
	}{
		{"2025-03-10", "2025-03-10"}, // Monday
		{"2025-03-12", "2025-03-10"}, // Wednesday
		{"2025-03-16", "2025-03-10"}, // Sunday
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StartOfWeek(date(t, tt.day)).String(), "week start of %s", tt.day)
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 1, DaysBetween(date(t, "2025-03-10"), date(t, "2025-03-10")))
	assert.Equal(t, 7, DaysBetween(date(t, "2025-03-10"), date(t, "2025-03-16")))
	assert.Equal(t, 0, DaysBetween(date(t, "2025-03-16"), date(t, "2025-03-10")))
}

func TestTaskPredicates(t *testing.T) {
	today := date(t, "2025-03-12")
	yesterday := date(t, "2025-03-11")
	nextWeek := date(t, "2025-03-19")

	overdueTask := models.Task{DueDate: &yesterday}
	assert.True(t, IsOverdue(overdueTask, today))
	assert.False(t, IsDueToday(overdueTask, today))

	// Completion and archival both clear the overdue flag
	completedTask := models.Task{DueDate: &yesterday, IsCompleted: true}
	assert.False(t, IsOverdue(completedTask, today))
	archivedTask := models.Task{DueDate: &yesterday, IsArchived: true}
	assert.False(t, IsOverdue(archivedTask, today))

	dueTodayTask := models.Task{DueDate: &today}
	assert.True(t, IsDueToday(dueTodayTask, today))
	assert.False(t, IsOverdue(dueTodayTask, today))
	assert.True(t, IsDueThisWeek(dueTodayTask, today))

	// The 7-day window starts today and excludes its end
	inWindow := date(t, "2025-03-18")
	inWindowTask := models.Task{DueDate: &inWindow}
	assert.True(t, IsDueThisWeek(inWindowTask, today))
	outOfWindowTask := models.Task{DueDate: &nextWeek}
	assert.False(t, IsDueThisWeek(outOfWindowTask, today))

	noDueDateTask := models.Task{}
	assert.False(t, IsOverdue(noDueDateTask, today))
	assert.False(t, IsDueToday(noDueDateTask, today))
	assert.False(t, IsDueThisWeek(noDueDateTask, today))
}
