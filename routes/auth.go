package routes

import (
	"net/http"

	"trackit-app/trackit/database"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

func RegisterAuthRoutes(router *gin.Engine, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	group := router.Group("/api/v1/auth")
	{
		group.POST("/register", func(c *gin.Context) { Register(c, db, userService) })
		group.POST("/login", func(c *gin.Context) { Login(c, db, authService) })
	}
}

func Register(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := userService.Register(db, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindingError(c, err)
		return
	}

	token, user, err := authService.Login(db, request.Username, request.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		UserID:    user.ID.String(),
		Username:  user.Username,
	})
}
