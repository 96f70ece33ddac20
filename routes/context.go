package routes

import (
	"net/http"

	"trackit-app/trackit/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user's id set by the auth
// middleware. Missing identity aborts the request.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		respondError(c, http.StatusUnauthorized, "Authentication Failed", "User not authenticated")
		return uuid.Nil, false
	}

	userID, ok := userIDInterface.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Internal Server Error", "Invalid user ID format")
		return uuid.Nil, false
	}

	return userID, true
}

// dateRangeParams parses the inclusive start_date/end_date query parameters.
func dateRangeParams(c *gin.Context) (models.Date, models.Date, bool) {
	start, err := models.ParseDate(c.Query("start_date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Validation Error", "start_date must be a valid YYYY-MM-DD date")
		return models.Date{}, models.Date{}, false
	}

	end, err := models.ParseDate(c.Query("end_date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Validation Error", "end_date must be a valid YYYY-MM-DD date")
		return models.Date{}, models.Date{}, false
	}

	if end.Before(start.Time) {
		respondError(c, http.StatusBadRequest, "Validation Error", "end_date must not be before start_date")
		return models.Date{}, models.Date{}, false
	}

	return start, end, true
}
