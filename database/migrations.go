package database

import (
	"trackit-app/trackit/models"

	"gorm.io/gorm"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Habit{},
		&models.HabitLog{},
		&models.Event{},
	)
}
