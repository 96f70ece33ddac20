package routes

import (
	"net/http"

	"trackit-app/trackit/database"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

func RegisterHabitRoutes(group *gin.RouterGroup, db *database.Database, habitService services.HabitServiceInterface) {
	group.GET("/habits", func(c *gin.Context) { GetHabits(c, db, habitService) })
	group.POST("/habits", func(c *gin.Context) { CreateHabit(c, db, habitService) })
	group.GET("/habits/:id", func(c *gin.Context) { GetHabitById(c, db, habitService) })
	group.PUT("/habits/:id", func(c *gin.Context) { UpdateHabit(c, db, habitService) })
	group.DELETE("/habits/:id", func(c *gin.Context) { DeleteHabit(c, db, habitService) })
}

func CreateHabit(c *gin.Context, db *database.Database, habitService services.HabitServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.HabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	habit, err := habitService.CreateHabit(db, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

// GetHabits lists the requester's habits with their current streaks.
func GetHabits(c *gin.Context, db *database.Database, habitService services.HabitServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	habits, err := habitService.GetHabits(db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func GetHabitById(c *gin.Context, db *database.Database, habitService services.HabitServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	habit, err := habitService.GetHabitById(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func UpdateHabit(c *gin.Context, db *database.Database, habitService services.HabitServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.HabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	habit, err := habitService.UpdateHabit(db, userID, c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func DeleteHabit(c *gin.Context, db *database.Database, habitService services.HabitServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := habitService.DeleteHabit(db, userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
