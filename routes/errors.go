package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, label, message string) {
	c.JSON(status, ErrorResponse{
		Status:    status,
		Error:     label,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// respondBindingError maps a JSON binding failure to a validation response
// with per-field messages where the validator provides them.
func respondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details[fieldErr.Field()] = "failed on " + fieldErr.Tag() + " validation"
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Validation Error",
			Message:   "Please check the input fields",
			Timestamp: time.Now().UTC(),
			Details:   details,
		})
		return
	}

	respondError(c, http.StatusBadRequest, "Bad Request", err.Error())
}

// respondServiceError maps service sentinels to HTTP statuses. Anything
// unrecognized is logged and reported as an internal error without leaking
// the underlying message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrHabitNotFound):
		respondError(c, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, services.ErrUsernameExists),
		errors.Is(err, services.ErrAlreadyLogged):
		respondError(c, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Authentication Failed", "Invalid username or password")
	case errors.Is(err, services.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Validation Error", err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		respondError(c, http.StatusForbidden, "Access Denied", "You don't have permission to access this resource")
	default:
		log.Printf("Unexpected error: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
	}
}
