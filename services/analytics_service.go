package services

import (
	"fmt"
	"sort"

	"trackit-app/trackit/database"
	"trackit-app/trackit/models"
	"trackit-app/trackit/utils/dates"

	"github.com/google/uuid"
)

// NoDataSentinel is reported for best/worst days when the range holds no logs.
const NoDataSentinel = "No data"

// Summary aggregates habit logs over an inclusive date range. Completed and
// pending are counted in distinct days, one coherent unit throughout.
type Summary struct {
	TotalDays     int `json:"total_days"`
	CompletedDays int `json:"completed_days"`
	PendingDays   int `json:"pending_days"`
	LogCount      int `json:"log_count"`
}

type Consistency struct {
	DaysWithHabits int    `json:"days_with_habits"`
	TotalDays      int    `json:"total_days"`
	Consistency    string `json:"consistency"`
}

type BestWorstDays struct {
	BestDay      string `json:"best_day"`
	BestDayLogs  int    `json:"best_day_logs"`
	WorstDay     string `json:"worst_day"`
	WorstDayLogs int    `json:"worst_day_logs"`
}

type AnalyticsServiceInterface interface {
	GetSummary(db *database.Database, userID uuid.UUID, start, end models.Date) (Summary, error)
	GetConsistency(db *database.Database, userID uuid.UUID, start, end models.Date) (Consistency, error)
	GetBestWorstDays(db *database.Database, userID uuid.UUID, start, end models.Date) (BestWorstDays, error)
}

type AnalyticsService struct{}

func (s *AnalyticsService) GetSummary(db *database.Database, userID uuid.UUID, start, end models.Date) (Summary, error) {
	logs, err := s.logsInRange(db, userID, start, end)
	if err != nil {
		return Summary{}, err
	}
	return summaryFrom(logs, start, end), nil
}

func (s *AnalyticsService) GetConsistency(db *database.Database, userID uuid.UUID, start, end models.Date) (Consistency, error) {
	logs, err := s.logsInRange(db, userID, start, end)
	if err != nil {
		return Consistency{}, err
	}
	return consistencyFrom(logs, start, end), nil
}

func (s *AnalyticsService) GetBestWorstDays(db *database.Database, userID uuid.UUID, start, end models.Date) (BestWorstDays, error) {
	logs, err := s.logsInRange(db, userID, start, end)
	if err != nil {
		return BestWorstDays{}, err
	}
	return bestWorstFrom(logs), nil
}

func (s *AnalyticsService) logsInRange(db *database.Database, userID uuid.UUID, start, end models.Date) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	err := db.DB.
		Where("user_id = ? AND log_date >= ? AND log_date <= ?", userID, start, end).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func countByDate(logs []models.HabitLog) map[string]int {
	counts := make(map[string]int, len(logs))
	for _, log := range logs {
		counts[log.LogDate.String()]++
	}
	return counts
}

func summaryFrom(logs []models.HabitLog, start, end models.Date) Summary {
	totalDays := dates.DaysBetween(start, end)
	completed := len(countByDate(logs))

	pending := totalDays - completed
	if pending < 0 {
		pending = 0
	}

	return Summary{
		TotalDays:     totalDays,
		CompletedDays: completed,
		PendingDays:   pending,
		LogCount:      len(logs),
	}
}

func consistencyFrom(logs []models.HabitLog, start, end models.Date) Consistency {
	totalDays := dates.DaysBetween(start, end)
	distinct := len(countByDate(logs))

	rate := 0.0
	if totalDays > 0 {
		rate = float64(distinct) / float64(totalDays)
	}

	return Consistency{
		DaysWithHabits: distinct,
		TotalDays:      totalDays,
		Consistency:    fmt.Sprintf("%.2f", rate),
	}
}

// bestWorstFrom picks the extremum days by log count. Ties break toward the
// earliest date so the result is deterministic.
func bestWorstFrom(logs []models.HabitLog) BestWorstDays {
	counts := countByDate(logs)
	if len(counts) == 0 {
		return BestWorstDays{
			BestDay:  NoDataSentinel,
			WorstDay: NoDataSentinel,
		}
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	result := BestWorstDays{
		BestDay:      days[0],
		BestDayLogs:  counts[days[0]],
		WorstDay:     days[0],
		WorstDayLogs: counts[days[0]],
	}

	for _, day := range days[1:] {
		if counts[day] > result.BestDayLogs {
			result.BestDay = day
			result.BestDayLogs = counts[day]
		}
		if counts[day] < result.WorstDayLogs {
			result.WorstDay = day
			result.WorstDayLogs = counts[day]
		}
	}

	return result
}

var AnalyticsServiceInstance AnalyticsServiceInterface = &AnalyticsService{}
