package services

import (
	"errors"
	"math"
	"time"

	"trackit-app/trackit/broker"
	"trackit-app/trackit/database"
	"trackit-app/trackit/models"
	"trackit-app/trackit/utils/dates"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskInput struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	DueDate     *models.Date      `json:"due_date"`
	Priority    models.Priority   `json:"priority"`
	RepeatType  models.RepeatType `json:"repeat_type"`
	Category    string            `json:"category"`
}

// TaskFilters narrows task listings. Nil pointers leave a dimension
// unfiltered; Archived defaults to "not archived" at the route layer.
type TaskFilters struct {
	Completed *bool
	Archived  *bool
	Category  string
	Priority  models.Priority
}

type TaskAnalytics struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Overdue        int            `json:"overdue"`
	DueToday       int            `json:"due_today"`
	CompletionRate float64        `json:"completion_rate"`
	ByPriority     map[string]int `json:"by_priority"`
	ByCategory     map[string]int `json:"by_category"`
}

type TaskServiceInterface interface {
	CreateTask(db *database.Database, userID uuid.UUID, input TaskInput) (models.Task, error)
	GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	GetTasks(db *database.Database, userID uuid.UUID, filters TaskFilters) ([]models.Task, error)
	GetTodayTasks(db *database.Database, userID uuid.UUID) ([]models.Task, error)
	GetOverdueTasks(db *database.Database, userID uuid.UUID) ([]models.Task, error)
	GetUpcomingTasks(db *database.Database, userID uuid.UUID) ([]models.Task, error)
	GetTaskHistory(db *database.Database, userID uuid.UUID, start, end models.Date) ([]models.Task, error)
	UpdateTask(db *database.Database, userID uuid.UUID, id string, input TaskInput) (models.Task, error)
	CompleteTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	IncompleteTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	ArchiveTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	DeleteTask(db *database.Database, userID uuid.UUID, id string) error
	GetCategories(db *database.Database, userID uuid.UUID) ([]string, error)
	GetTaskAnalytics(db *database.Database, userID uuid.UUID) (TaskAnalytics, error)
}

type TaskService struct{}

func (s *TaskService) CreateTask(db *database.Database, userID uuid.UUID, input TaskInput) (models.Task, error) {
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if input.RepeatType == "" {
		input.RepeatType = models.RepeatNone
	}
	if !input.Priority.Valid() || !input.RepeatType.Valid() {
		return models.Task{}, ErrInvalidInput
	}

	task := models.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		RepeatType:  input.RepeatType,
		Category:    input.Category,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := createTaskEvent(tx, broker.TaskCreated, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) GetTasks(db *database.Database, userID uuid.UUID, filters TaskFilters) ([]models.Task, error) {
	query := db.DB.Where("user_id = ?", userID)

	if filters.Completed != nil {
		query = query.Where("is_completed = ?", *filters.Completed)
	}
	if filters.Archived != nil {
		query = query.Where("is_archived = ?", *filters.Archived)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Priority != "" {
		if !filters.Priority.Valid() {
			return nil, ErrInvalidInput
		}
		query = query.Where("priority = ?", filters.Priority)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) GetTodayTasks(db *database.Database, userID uuid.UUID) ([]models.Task, error) {
	today := models.Today()
	var tasks []models.Task
	err := db.DB.
		Where("user_id = ? AND is_archived = ? AND due_date = ?", userID, false, today).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) GetOverdueTasks(db *database.Database, userID uuid.UUID) ([]models.Task, error) {
	today := models.Today()
	var tasks []models.Task
	err := db.DB.
		Where("user_id = ? AND is_archived = ? AND is_completed = ? AND due_date < ?", userID, false, false, today).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetUpcomingTasks returns tasks due within the next 7 days, starting today,
// end exclusive.
func (s *TaskService) GetUpcomingTasks(db *database.Database, userID uuid.UUID) ([]models.Task, error) {
	today := models.Today()
	end := today.AddDays(7)
	var tasks []models.Task
	err := db.DB.
		Where("user_id = ? AND is_archived = ? AND due_date >= ? AND due_date < ?", userID, false, today, end).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) GetTaskHistory(db *database.Database, userID uuid.UUID, start, end models.Date) ([]models.Task, error) {
	var tasks []models.Task
	err := db.DB.
		Where("user_id = ? AND due_date >= ? AND due_date <= ?", userID, start, end).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) UpdateTask(db *database.Database, userID uuid.UUID, id string, input TaskInput) (models.Task, error) {
	if input.Priority != "" && !input.Priority.Valid() {
		return models.Task{}, ErrInvalidInput
	}
	if input.RepeatType != "" && !input.RepeatType.Valid() {
		return models.Task{}, ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.Category = input.Category
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.RepeatType != "" {
		task.RepeatType = input.RepeatType
	}

	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := createTaskEvent(tx, broker.TaskUpdated, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) CompleteTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	now := dates.Timestamp()
	return s.setCompletion(db, userID, id, true, &now, broker.TaskCompleted)
}

func (s *TaskService) IncompleteTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	return s.setCompletion(db, userID, id, false, nil, broker.TaskIncompleted)
}

// setCompletion flips the completion pair atomically: CompletedAt is non-nil
// exactly when IsCompleted is true.
func (s *TaskService) setCompletion(db *database.Database, userID uuid.UUID, id string, completed bool, completedAt *time.Time, eventType broker.EventType) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	task.IsCompleted = completed
	task.CompletedAt = completedAt

	updates := map[string]interface{}{
		"is_completed": completed,
		"completed_at": completedAt,
	}
	if err := tx.Model(&task).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := createTaskEvent(tx, eventType, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// ArchiveTask hides a task from default views. Archival is one-way.
func (s *TaskService) ArchiveTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	task.IsArchived = true
	if err := tx.Model(&task).Update("is_archived", true).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := createTaskEvent(tx, broker.TaskArchived, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) DeleteTask(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := createTaskEvent(tx, broker.TaskDeleted, task); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

func (s *TaskService) GetCategories(db *database.Database, userID uuid.UUID) ([]string, error) {
	var categories []string
	err := db.DB.Model(&models.Task{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetTaskAnalytics aggregates the user's non-archived tasks.
func (s *TaskService) GetTaskAnalytics(db *database.Database, userID uuid.UUID) (TaskAnalytics, error) {
	var tasks []models.Task
	err := db.DB.
		Where("user_id = ? AND is_archived = ?", userID, false).
		Find(&tasks).Error
	if err != nil {
		return TaskAnalytics{}, err
	}
	return taskAnalyticsFrom(tasks, models.Today()), nil
}

func taskAnalyticsFrom(tasks []models.Task, today models.Date) TaskAnalytics {
	analytics := TaskAnalytics{
		Total:      len(tasks),
		ByPriority: make(map[string]int),
		ByCategory: make(map[string]int),
	}

	for _, task := range tasks {
		if task.IsCompleted {
			analytics.Completed++
		}
		if dates.IsOverdue(task, today) {
			analytics.Overdue++
		}
		if dates.IsDueToday(task, today) {
			analytics.DueToday++
		}
		analytics.ByPriority[string(task.Priority)]++
		if task.Category != "" {
			analytics.ByCategory[task.Category]++
		}
	}

	if analytics.Total > 0 {
		rate := float64(analytics.Completed) / float64(analytics.Total) * 100
		analytics.CompletionRate = math.Round(rate*100) / 100
	}

	return analytics
}

func createTaskEvent(tx *gorm.DB, eventType broker.EventType, task models.Task) error {
	event, err := models.NewEvent(
		string(eventType),
		"task",
		task.UserID.String(),
		map[string]interface{}{
			"task_id":      task.ID.String(),
			"user_id":      task.UserID.String(),
			"title":        task.Title,
			"is_completed": task.IsCompleted,
			"is_archived":  task.IsArchived,
		},
	)
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
