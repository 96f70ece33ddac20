package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority is the ordered task priority set.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// RepeatType describes how a task recurs.
type RepeatType string

const (
	RepeatNone    RepeatType = "NONE"
	RepeatDaily   RepeatType = "DAILY"
	RepeatWeekly  RepeatType = "WEEKLY"
	RepeatMonthly RepeatType = "MONTHLY"
)

func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	DueDate     *Date          `gorm:"type:date" json:"due_date,omitempty"`
	Priority    Priority       `gorm:"type:varchar(16)" json:"priority"`
	RepeatType  RepeatType     `gorm:"type:varchar(16)" json:"repeat_type"`
	Category    string         `json:"category,omitempty"`
	IsCompleted bool           `json:"is_completed"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	IsArchived  bool           `json:"is_archived"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
