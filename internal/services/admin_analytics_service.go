package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/cache"
	"github.com/optima-labs/optima-api/internal/models"
)

// UsageStats aggregates the trailing API usage window.
// TotalRequests always equals the sum of the StatusCodes histogram.
type UsageStats struct {
	TotalRequests       int64            `json:"total_requests"`
	DailyUsage          map[string]int64 `json:"daily_usage"`
	EndpointUsage       map[string]int64 `json:"endpoint_usage"`
	StatusCodes         map[string]int64 `json:"status_codes"`
	AverageResponseTime float64          `json:"average_response_time"`
}

// GrowthStats is the day-by-day signup histogram.
type GrowthStats struct {
	DailySignups  map[string]int64 `json:"daily_signups"`
	TotalNewUsers int64            `json:"total_new_users"`
}

// AdminAnalyticsService computes usage and growth aggregates. Grouping runs
// in SQL rather than application memory, so the window never has to be
// loaded row by row. The individual queries are still independent; the
// histograms are not a consistent snapshot of each other.
type AdminAnalyticsService struct {
	db    *gorm.DB
	cache *cache.Redis // optional, nil disables caching
}

func NewAdminAnalyticsService(db *gorm.DB, cache *cache.Redis) *AdminAnalyticsService {
	return &AdminAnalyticsService{db: db, cache: cache}
}

const statsCacheTTL = 60 * time.Second

// GetAPIUsageStats aggregates api_usage_logs over the trailing days window.
func (s *AdminAnalyticsService) GetAPIUsageStats(ctx context.Context, days int) (*UsageStats, error) {
	if days < 1 {
		days = 30
	}

	cacheKey := fmt.Sprintf("analytics:usage:%d", days)
	if s.cache != nil {
		var cached UsageStats
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			// An entry we cannot read is dropped so the fresh result replaces it.
			s.cache.Delete(ctx, cacheKey)
		} else if hit {
			return &cached, nil
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	stats := &UsageStats{
		DailyUsage:    map[string]int64{},
		EndpointUsage: map[string]int64{},
		StatusCodes:   map[string]int64{},
	}

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.APIUsageLog{}).Where("created_at >= ?", since)
	}

	// Missing response times count as zero in the mean.
	var summary struct {
		Total   int64
		AvgTime *float64
	}
	if err := base().
		Select("COUNT(*) AS total, AVG(COALESCE(response_time_ms, 0)) AS avg_time").
		Scan(&summary).Error; err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	stats.TotalRequests = summary.Total
	if summary.AvgTime != nil {
		stats.AverageResponseTime = *summary.AvgTime
	}

	var daily []groupCount
	if err := base().
		Select("date(created_at) AS label, COUNT(*) AS count").
		Group("date(created_at)").
		Scan(&daily).Error; err != nil {
		return nil, fmt.Errorf("daily usage: %w", err)
	}
	for _, row := range daily {
		stats.DailyUsage[row.Label] = row.Count
	}

	var endpoints []groupCount
	if err := base().
		Select("endpoint AS label, COUNT(*) AS count").
		Group("endpoint").
		Scan(&endpoints).Error; err != nil {
		return nil, fmt.Errorf("endpoint usage: %w", err)
	}
	for _, row := range endpoints {
		stats.EndpointUsage[row.Label] = row.Count
	}

	var statuses []statusCount
	if err := base().
		Select("status_code AS code, COUNT(*) AS count").
		Group("status_code").
		Scan(&statuses).Error; err != nil {
		return nil, fmt.Errorf("status codes: %w", err)
	}
	for _, row := range statuses {
		stats.StatusCodes[strconv.Itoa(row.Code)] = row.Count
	}

	if s.cache != nil {
		// Cache trouble is not an analytics failure.
		if err := s.cache.SetJSON(ctx, cacheKey, stats, statsCacheTTL); err != nil {
			slog.Warn("analytics cache write failed", "key", cacheKey, "error", err)
		}
	}

	return stats, nil
}

// GetUserGrowthStats aggregates profile signups over the trailing window.
func (s *AdminAnalyticsService) GetUserGrowthStats(ctx context.Context, days int) (*GrowthStats, error) {
	if days < 1 {
		days = 30
	}

	cacheKey := fmt.Sprintf("analytics:growth:%d", days)
	if s.cache != nil {
		var cached GrowthStats
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			s.cache.Delete(ctx, cacheKey)
		} else if hit {
			return &cached, nil
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	stats := &GrowthStats{DailySignups: map[string]int64{}}

	var daily []groupCount
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("created_at >= ?", since).
		Select("date(created_at) AS label, COUNT(*) AS count").
		Group("date(created_at)").
		Order("date(created_at)").
		Scan(&daily).Error; err != nil {
		return nil, fmt.Errorf("daily signups: %w", err)
	}
	for _, row := range daily {
		stats.DailySignups[row.Label] = row.Count
		stats.TotalNewUsers += row.Count
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, stats, statsCacheTTL); err != nil {
			slog.Warn("analytics cache write failed", "key", cacheKey, "error", err)
		}
	}

	return stats, nil
}

type groupCount struct {
	Label string
	Count int64
}

type statusCount struct {
	Code  int
	Count int64
}
