package services

import (
	"errors"

	"trackit-app/trackit/broker"
	"trackit-app/trackit/database"
	"trackit-app/trackit/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitInput struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Frequency   models.Frequency `json:"frequency"`
}

type HabitServiceInterface interface {
	CreateHabit(db *database.Database, userID uuid.UUID, input HabitInput) (models.Habit, error)
	GetHabits(db *database.Database, userID uuid.UUID) ([]models.HabitWithStreak, error)
	GetHabitById(db *database.Database, userID uuid.UUID, id string) (models.Habit, error)
	UpdateHabit(db *database.Database, userID uuid.UUID, id string, input HabitInput) (models.Habit, error)
	DeleteHabit(db *database.Database, userID uuid.UUID, id string) error
}

type HabitService struct {
	logService HabitLogServiceInterface
}

func NewHabitService(logService HabitLogServiceInterface) *HabitService {
	return &HabitService{logService: logService}
}

func (s *HabitService) CreateHabit(db *database.Database, userID uuid.UUID, input HabitInput) (models.Habit, error) {
	if input.Frequency == "" {
		input.Frequency = models.FrequencyDaily
	}
	if !input.Frequency.Valid() {
		return models.Habit{}, ErrInvalidInput
	}

	habit := models.Habit{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Habit{}, tx.Error
	}

	if err := tx.Create(&habit).Error; err != nil {
		tx.Rollback()
		return models.Habit{}, err
	}

	if err := createHabitEvent(tx, broker.HabitCreated, habit); err != nil {
		tx.Rollback()
		return models.Habit{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Habit{}, err
	}

	return habit, nil
}

// GetHabits lists the user's habits, each with its current streak. Streaks
// are computed lazily here rather than stored.
func (s *HabitService) GetHabits(db *database.Database, userID uuid.UUID) ([]models.HabitWithStreak, error) {
	var habits []models.Habit
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&habits).Error; err != nil {
		return nil, err
	}

	result := make([]models.HabitWithStreak, 0, len(habits))
	for _, habit := range habits {
		streak, err := s.logService.GetCurrentStreak(db, userID, habit.ID.String())
		if err != nil {
			return nil, err
		}
		result = append(result, models.HabitWithStreak{Habit: habit, Streak: streak})
	}
	return result, nil
}

func (s *HabitService) GetHabitById(db *database.Database, userID uuid.UUID, id string) (models.Habit, error) {
	var habit models.Habit
	if err := db.DB.First(&habit, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Habit{}, ErrHabitNotFound
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *HabitService) UpdateHabit(db *database.Database, userID uuid.UUID, id string, input HabitInput) (models.Habit, error) {
	if input.Frequency != "" && !input.Frequency.Valid() {
		return models.Habit{}, ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Habit{}, tx.Error
	}

	var habit models.Habit
	if err := tx.First(&habit, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Habit{}, ErrHabitNotFound
		}
		return models.Habit{}, err
	}

	habit.Name = input.Name
	habit.Description = input.Description
	if input.Frequency != "" {
		habit.Frequency = input.Frequency
	}

	if err := tx.Save(&habit).Error; err != nil {
		tx.Rollback()
		return models.Habit{}, err
	}

	if err := createHabitEvent(tx, broker.HabitUpdated, habit); err != nil {
		tx.Rollback()
		return models.Habit{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Habit{}, err
	}

	return habit, nil
}

// DeleteHabit removes a habit and its logs in one transaction. The log rows
// go first so the delete never leaves orphans.
func (s *HabitService) DeleteHabit(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var habit models.Habit
	if err := tx.First(&habit, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHabitNotFound
		}
		return err
	}

	if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitLog{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&habit).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := createHabitEvent(tx, broker.HabitDeleted, habit); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func createHabitEvent(tx *gorm.DB, eventType broker.EventType, habit models.Habit) error {
	event, err := models.NewEvent(
		string(eventType),
		"habit",
		habit.UserID.String(),
		map[string]interface{}{
			"habit_id":  habit.ID.String(),
			"user_id":   habit.UserID.String(),
			"name":      habit.Name,
			"frequency": string(habit.Frequency),
		},
	)
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

var HabitServiceInstance HabitServiceInterface
