package services

import (
	"errors"

	"trackit-app/trackit/broker"
	"trackit-app/trackit/database"
	"trackit-app/trackit/models"
	"trackit-app/trackit/utils/dates"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitLogServiceInterface interface {
	LogHabit(db *database.Database, userID uuid.UUID, habitID string) (models.HabitLog, error)
	GetCurrentStreak(db *database.Database, userID uuid.UUID, habitID string) (int, error)
	GetWeeklyProgress(db *database.Database, userID uuid.UUID, habitID string) (map[string]int, error)
	GetLogsForHabit(db *database.Database, userID uuid.UUID, habitID string) ([]models.HabitLog, error)
}

type HabitLogService struct{}

// LogHabit records that the habit was performed today. The unique index on
// (habit_id, log_date) is the authority on same-day duplicates; a conflicting
// insert surfaces as ErrAlreadyLogged.
func (s *HabitLogService) LogHabit(db *database.Database, userID uuid.UUID, habitID string) (models.HabitLog, error) {
	habit, err := findOwnedHabit(db.DB, userID, habitID)
	if err != nil {
		return models.HabitLog{}, err
	}

	log := models.HabitLog{
		ID:      uuid.New(),
		HabitID: habit.ID,
		UserID:  userID,
		LogDate: models.Today(),
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.HabitLog{}, tx.Error
	}

	if err := tx.Create(&log).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.HabitLog{}, ErrAlreadyLogged
		}
		return models.HabitLog{}, err
	}

	event, err := models.NewEvent(
		string(broker.HabitLogged),
		"habit_log",
		userID.String(),
		map[string]interface{}{
			"habit_log_id": log.ID.String(),
			"habit_id":     habit.ID.String(),
			"user_id":      userID.String(),
			"log_date":     log.LogDate.String(),
		},
	)
	if err != nil {
		tx.Rollback()
		return models.HabitLog{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.HabitLog{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.HabitLog{}, err
	}

	return log, nil
}

func (s *HabitLogService) GetCurrentStreak(db *database.Database, userID uuid.UUID, habitID string) (int, error) {
	habit, err := findOwnedHabit(db.DB, userID, habitID)
	if err != nil {
		return 0, err
	}

	hasLog := func(date models.Date) (bool, error) {
		var count int64
		err := db.DB.Model(&models.HabitLog{}).
			Where("habit_id = ? AND log_date = ?", habit.ID, date).
			Count(&count).Error
		return count > 0, err
	}

	return currentStreak(habit.Frequency, models.Today(), hasLog)
}

// currentStreak counts consecutive qualifying periods ending at today with at
// least one log each, stopping at the first gap. Daily habits walk back
// day-by-day; weekly habits check the Monday of the current week at weekly
// offsets.
func currentStreak(frequency models.Frequency, today models.Date, hasLog func(models.Date) (bool, error)) (int, error) {
	anchor := today
	if frequency == models.FrequencyWeekly {
		anchor = dates.StartOfWeek(today)
	}

	step := 1
	if frequency == models.FrequencyWeekly {
		step = 7
	}

	streak := 0
	for {
		logged, err := hasLog(anchor.AddDays(-streak * step))
		if err != nil {
			return 0, err
		}
		if !logged {
			return streak, nil
		}
		streak++
	}
}

// GetWeeklyProgress maps each of the last 7 calendar dates (inclusive of
// today) to its log count.
func (s *HabitLogService) GetWeeklyProgress(db *database.Database, userID uuid.UUID, habitID string) (map[string]int, error) {
	habit, err := findOwnedHabit(db.DB, userID, habitID)
	if err != nil {
		return nil, err
	}

	today := models.Today()
	start := today.AddDays(-6)

	var logs []models.HabitLog
	err = db.DB.
		Where("habit_id = ? AND log_date >= ? AND log_date <= ?", habit.ID, start, today).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return weeklyProgressFrom(logs, today), nil
}

func weeklyProgressFrom(logs []models.HabitLog, today models.Date) map[string]int {
	progress := make(map[string]int, 7)
	for offset := -6; offset <= 0; offset++ {
		progress[today.AddDays(offset).String()] = 0
	}
	for _, log := range logs {
		progress[log.LogDate.String()]++
	}
	return progress
}

func (s *HabitLogService) GetLogsForHabit(db *database.Database, userID uuid.UUID, habitID string) ([]models.HabitLog, error) {
	habit, err := findOwnedHabit(db.DB, userID, habitID)
	if err != nil {
		return nil, err
	}

	var logs []models.HabitLog
	if err := db.DB.Where("habit_id = ?", habit.ID).Order("log_date DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// findOwnedHabit resolves a habit scoped to its owner. A habit that exists
// but belongs to another user is reported as not found.
func findOwnedHabit(db *gorm.DB, userID uuid.UUID, habitID string) (models.Habit, error) {
	var habit models.Habit
	if err := db.First(&habit, "id = ? AND user_id = ?", habitID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Habit{}, ErrHabitNotFound
		}
		return models.Habit{}, err
	}
	return habit, nil
}

var HabitLogServiceInstance HabitLogServiceInterface = &HabitLogService{}
