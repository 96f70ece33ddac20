package models

import (
	"time"

	"github.com/google/uuid"
)

// Frequency is the qualifying period for a habit streak.
type Frequency string

const (
	FrequencyDaily  Frequency = "DAILY"
	FrequencyWeekly Frequency = "WEEKLY"
)

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

type Habit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Frequency   Frequency `gorm:"type:varchar(16)" json:"frequency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HabitWithStreak is the list representation of a habit carrying its
// lazily computed current streak.
type HabitWithStreak struct {
	Habit
	Streak int `json:"streak"`
}
