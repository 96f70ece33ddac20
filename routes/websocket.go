package routes

import (
	"trackit-app/trackit/middleware"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes exposes the live event stream. Auth accepts the
// token as a query parameter because upgrade requests cannot carry headers
// from browsers.
func RegisterWebSocketRoutes(router *gin.Engine, authService services.AuthServiceInterface, wsService services.WebSocketServiceInterface) {
	router.GET("/ws", middleware.WebSocketAuthMiddleware(authService), func(c *gin.Context) {
		wsService.HandleConnection(c)
	})
}
