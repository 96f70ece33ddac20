package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"trackit-app/trackit/testutils"
)

func TestRegister_Success(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "events"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	service := NewUserService(NewAuthService("secret", 72))
	user, err := service.Register(db, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_UsernameTaken(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	service := NewUserService(NewAuthService("secret", 72))
	_, err := service.Register(db, RegisterInput{Username: "alice", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_RaceLosesToUniqueIndex(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	// The count passes but a concurrent insert wins; the unique index on
	// username is the final arbiter.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	service := NewUserService(NewAuthService("secret", 72))
	_, err := service.Register(db, RegisterInput{Username: "alice", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_RenameToTakenUsername(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(userID.String(), "alice"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	service := NewUserService(NewAuthService("secret", 72))
	_, err := service.UpdateProfile(db, userID, ProfileUpdateInput{Username: "bob"})
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfile_NotFound(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	service := NewUserService(NewAuthService("secret", 72))
	_, err := service.GetProfile(db, userID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccount_CascadesOwnedRows(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(userID.String(), "alice"))
	mock.ExpectExec(`DELETE FROM "habit_logs" WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "habits" WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "tasks" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`UPDATE "users" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "events"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	service := NewUserService(NewAuthService("secret", 72))
	err := service.DeleteAccount(db, userID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
