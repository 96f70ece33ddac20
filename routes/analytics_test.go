package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"trackit-app/trackit/database"
	"trackit-app/trackit/models"
	"trackit-app/trackit/services"
	"trackit-app/trackit/testutils"
)

type MockAnalyticsService struct{}

func (m *MockAnalyticsService) GetSummary(db *database.Database, userID uuid.UUID, start, end models.Date) (services.Summary, error) {
	return services.Summary{TotalDays: 7, CompletedDays: 3, PendingDays: 4, LogCount: 5}, nil
}

func (m *MockAnalyticsService) GetConsistency(db *database.Database, userID uuid.UUID, start, end models.Date) (services.Consistency, error) {
	return services.Consistency{DaysWithHabits: 3, TotalDays: 7, Consistency: "0.43"}, nil
}

func (m *MockAnalyticsService) GetBestWorstDays(db *database.Database, userID uuid.UUID, start, end models.Date) (services.BestWorstDays, error) {
	return services.BestWorstDays{
		BestDay:  services.NoDataSentinel,
		WorstDay: services.NoDataSentinel,
	}, nil
}

func setupAnalyticsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	db := &database.Database{}

	apiGroup := router.Group("/api/v1", testutils.AuthAs(ownerID, "testuser"))
	RegisterAnalyticsRoutes(apiGroup, db, &MockAnalyticsService{})
	return router
}

func TestGetSummaryRoute(t *testing.T) {
	router := setupAnalyticsRouter()

	t.Run("Valid Range", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/summary?start_date=2025-03-01&end_date=2025-03-07", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_days":7`)
		assert.Contains(t, w.Body.String(), `"completed_days":3`)
	})

	t.Run("Missing Dates", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/summary", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Reversed Range", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/summary?start_date=2025-03-07&end_date=2025-03-01", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetConsistencyRoute(t *testing.T) {
	router := setupAnalyticsRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/analytics/consistency?start_date=2025-03-01&end_date=2025-03-07", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"consistency":"0.43"`)
}

func TestGetBestWorstDaysRoute(t *testing.T) {
	router := setupAnalyticsRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/analytics/best-worst-days?start_date=2025-03-01&end_date=2025-03-07", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"best_day":"No data"`)
}
