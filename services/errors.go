package services

import "errors"

// Common errors. A lookup scoped to the requesting user reports a row owned
// by someone else with the same not-found error as an absent row.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUsernameExists     = errors.New("username already exists")
	ErrAlreadyLogged      = errors.New("habit already logged today")
	ErrInternal           = errors.New("internal server error")
)
