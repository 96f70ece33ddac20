package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthAs stands in for the JWT middleware in route tests, injecting an
// authenticated identity into the request context.
func AuthAs(userID uuid.UUID, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}
