package routes

import (
	"net/http"

	"trackit-app/trackit/database"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.GET("/users/profile", func(c *gin.Context) { GetProfile(c, db, userService) })
	group.PUT("/users/profile", func(c *gin.Context) { UpdateProfile(c, db, userService) })
	group.DELETE("/users/profile", func(c *gin.Context) { DeleteAccount(c, db, userService) })
}

func GetProfile(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := userService.GetProfile(db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateProfile(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := userService.UpdateProfile(db, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteAccount(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := userService.DeleteAccount(db, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
