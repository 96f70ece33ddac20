package routes

import (
	"net/http"

	"trackit-app/trackit/database"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

func RegisterHabitLogRoutes(group *gin.RouterGroup, db *database.Database, habitLogService services.HabitLogServiceInterface) {
	group.POST("/habits/:id/log", func(c *gin.Context) { LogHabit(c, db, habitLogService) })
	group.GET("/habits/:id/streak", func(c *gin.Context) { GetHabitStreak(c, db, habitLogService) })
	group.GET("/habits/:id/progress", func(c *gin.Context) { GetWeeklyProgress(c, db, habitLogService) })
	group.GET("/habits/:id/logs", func(c *gin.Context) { GetHabitLogs(c, db, habitLogService) })
}

// LogHabit records today's occurrence. Logging the same habit twice on one
// calendar day yields a conflict.
func LogHabit(c *gin.Context, db *database.Database, habitLogService services.HabitLogServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	log, err := habitLogService.LogHabit(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func GetHabitStreak(c *gin.Context, db *database.Database, habitLogService services.HabitLogServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	streak, err := habitLogService.GetCurrentStreak(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_streak": streak})
}

func GetWeeklyProgress(c *gin.Context, db *database.Database, habitLogService services.HabitLogServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	progress, err := habitLogService.GetWeeklyProgress(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func GetHabitLogs(c *gin.Context, db *database.Database, habitLogService services.HabitLogServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logs, err := habitLogService.GetLogsForHabit(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
