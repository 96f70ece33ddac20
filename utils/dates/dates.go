// Package dates centralizes the calendar arithmetic and temporal task
// predicates used by the task, habit and analytics services, so that
// "overdue" and "due today" mean the same thing everywhere.
package dates

import (
	"time"

	"trackit-app/trackit/models"
)

// StartOfWeek returns the Monday of the week containing d.
func StartOfWeek(d models.Date) models.Date {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return d.AddDays(-(weekday - 1))
}

// DaysBetween returns the number of days in the inclusive range [start, end].
// A reversed range yields 0.
func DaysBetween(start, end models.Date) int {
	days := int(end.Sub(start.Time).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether the task's due date has passed without completion.
// Completed and archived tasks are never overdue.
func IsOverdue(task models.Task, today models.Date) bool {
	if task.IsCompleted || task.IsArchived || task.DueDate == nil {
		return false
	}
	return task.DueDate.Before(today.Time)
}

// IsDueToday reports whether the task is due on the given day.
func IsDueToday(task models.Task, today models.Date) bool {
	return task.DueDate != nil && task.DueDate.Equal(today.Time)
}

// IsDueThisWeek reports whether the task is due within the next 7 days,
// starting today, end exclusive.
func IsDueThisWeek(task models.Task, today models.Date) bool {
	if task.DueDate == nil {
		return false
	}
	end := today.AddDays(7)
	return !task.DueDate.Before(today.Time) && task.DueDate.Before(end.Time)
}

// Timestamp returns the current UTC time, truncated to the second to keep
// stored and serialized values comparable.
func Timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
