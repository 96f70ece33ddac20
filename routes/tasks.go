package routes

import (
	"net/http"

	"trackit-app/trackit/database"
	"trackit-app/trackit/models"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/today", func(c *gin.Context) { GetTodayTasks(c, db, taskService) })
	group.GET("/tasks/overdue", func(c *gin.Context) { GetOverdueTasks(c, db, taskService) })
	group.GET("/tasks/upcoming", func(c *gin.Context) { GetUpcomingTasks(c, db, taskService) })
	group.GET("/tasks/history", func(c *gin.Context) { GetTaskHistory(c, db, taskService) })
	group.GET("/tasks/categories", func(c *gin.Context) { GetTaskCategories(c, db, taskService) })
	group.GET("/tasks/analytics", func(c *gin.Context) { GetTaskAnalytics(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	group.POST("/tasks/:id/complete", func(c *gin.Context) { CompleteTask(c, db, taskService) })
	group.POST("/tasks/:id/incomplete", func(c *gin.Context) { IncompleteTask(c, db, taskService) })
	group.POST("/tasks/:id/archive", func(c *gin.Context) { ArchiveTask(c, db, taskService) })
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	task, err := taskService.CreateTask(db, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTasks lists the requester's tasks. Archived tasks are hidden unless the
// archived filter asks for them.
func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := services.TaskFilters{
		Category: c.Query("category"),
		Priority: models.Priority(c.Query("priority")),
	}

	if completed := c.Query("completed"); completed != "" {
		value := completed == "true"
		filters.Completed = &value
	}

	archived := false
	if archivedParam := c.Query("archived"); archivedParam != "" {
		archived = archivedParam == "true"
	}
	filters.Archived = &archived

	tasks, err := taskService.GetTasks(db, userID, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetTodayTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetTodayTasks(db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetOverdueTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetOverdueTasks(db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetUpcomingTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetUpcomingTasks(db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetTaskHistory(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetTaskHistory(db, userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetTaskCategories(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	categories, err := taskService.GetCategories(db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func GetTaskAnalytics(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	analytics, err := taskService.GetTaskAnalytics(db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.GetTaskById(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	task, err := taskService.UpdateTask(db, userID, c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func CompleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.CompleteTask(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func IncompleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.IncompleteTask(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func ArchiveTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.ArchiveTask(db, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
