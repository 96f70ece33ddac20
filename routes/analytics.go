package routes

import (
	"net/http"

	"trackit-app/trackit/database"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

func RegisterAnalyticsRoutes(group *gin.RouterGroup, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	group.GET("/analytics/summary", func(c *gin.Context) { GetSummary(c, db, analyticsService) })
	group.GET("/analytics/consistency", func(c *gin.Context) { GetConsistency(c, db, analyticsService) })
	group.GET("/analytics/best-worst-days", func(c *gin.Context) { GetBestWorstDays(c, db, analyticsService) })
}

func GetSummary(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	summary, err := analyticsService.GetSummary(db, userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func GetConsistency(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	consistency, err := analyticsService.GetConsistency(db, userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, consistency)
}

func GetBestWorstDays(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	days, err := analyticsService.GetBestWorstDays(db, userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}
