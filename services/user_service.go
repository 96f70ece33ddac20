package services

import (
	"errors"

	"trackit-app/trackit/broker"
	"trackit-app/trackit/database"
	"trackit-app/trackit/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" binding:"required,min=8"`
}

type ProfileUpdateInput struct {
	Username    string `json:"username" binding:"omitempty,min=3,max=64"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" binding:"omitempty,min=8"`
}

type UserServiceInterface interface {
	Register(db *database.Database, input RegisterInput) (models.User, error)
	GetProfile(db *database.Database, userID uuid.UUID) (models.User, error)
	UpdateProfile(db *database.Database, userID uuid.UUID, input ProfileUpdateInput) (models.User, error)
	DeleteAccount(db *database.Database, userID uuid.UUID) error
}

type UserService struct {
	authService AuthServiceInterface
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{authService: authService}
}

func (s *UserService) Register(db *database.Database, input RegisterInput) (models.User, error) {
	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: hash,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if count > 0 {
		tx.Rollback()
		return models.User{}, ErrUsernameExists
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrUsernameExists
		}
		return models.User{}, err
	}

	event, err := models.NewEvent(
		string(broker.UserRegistered),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id":  user.ID.String(),
			"username": user.Username,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) GetProfile(db *database.Database, userID uuid.UUID) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(db *database.Database, userID uuid.UUID, input ProfileUpdateInput) (models.User, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	updates := map[string]interface{}{}
	if input.Username != "" && input.Username != user.Username {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
			tx.Rollback()
			return models.User{}, err
		}
		if count > 0 {
			tx.Rollback()
			return models.User{}, ErrUsernameExists
		}
		updates["username"] = input.Username
		user.Username = input.Username
	}
	if input.Email != "" {
		updates["email"] = input.Email
		user.Email = input.Email
	}
	if input.DisplayName != "" {
		updates["display_name"] = input.DisplayName
		user.DisplayName = input.DisplayName
	}
	if input.Password != "" {
		hash, err := s.authService.HashPassword(input.Password)
		if err != nil {
			tx.Rollback()
			return models.User{}, err
		}
		updates["password_hash"] = hash
		user.PasswordHash = hash
	}

	if len(updates) > 0 {
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.User{}, ErrUsernameExists
			}
			return models.User{}, err
		}
	}

	event, err := models.NewEvent(
		string(broker.UserUpdated),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id":  user.ID.String(),
			"username": user.Username,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

// DeleteAccount removes the user and everything they own in one transaction.
// Dependent rows go first so the delete never leaves orphans.
func (s *UserService) DeleteAccount(db *database.Database, userID uuid.UUID) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.HabitLog{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Habit{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.UserDeleted),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id": user.ID.String(),
		},
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

var UserServiceInstance UserServiceInterface
