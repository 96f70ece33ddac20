package models

import (
	"time"

	"github.com/google/uuid"
)

// HabitLog records that a habit was performed on a calendar date. The
// composite unique index makes the store enforce at most one log per habit
// per day; the write path treats the resulting conflict as "already logged".
type HabitLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habit_logs_habit_date" json:"habit_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	LogDate   Date      `gorm:"type:date;not null;uniqueIndex:idx_habit_logs_habit_date" json:"log_date"`
	CreatedAt time.Time `json:"created_at"`
}
