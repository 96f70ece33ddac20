package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"trackit-app/trackit/services"
	"trackit-app/trackit/utils/token"
)

func setupProtectedRouter(authService services.AuthServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(authService), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID.(uuid.UUID).String()})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authService := services.NewAuthService("test-secret", 1)
	userID := uuid.New()

	tokenString, err := token.GenerateToken(userID, "alice", []byte("test-secret"), time.Hour)
	assert.NoError(t, err)

	router := setupProtectedRouter(authService)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupProtectedRouter(services.NewAuthService("test-secret", 1))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	router := setupProtectedRouter(services.NewAuthService("test-secret", 1))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupProtectedRouter(services.NewAuthService("test-secret", 1))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	tokenString, err := token.GenerateToken(uuid.New(), "alice", []byte("issuer-secret"), time.Hour)
	assert.NoError(t, err)

	router := setupProtectedRouter(services.NewAuthService("other-secret", 1))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
