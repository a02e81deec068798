package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/optima-labs/optima-api/internal/models"
)

func intPtr(v int) *int { return &v }

func TestGetAPIUsageStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminAnalyticsService(db, nil)

	logs := []models.APIUsageLog{
		{ID: uuid.New(), Endpoint: "/api/v1/processes/analyze", Method: "POST", StatusCode: 200, ResponseTimeMs: intPtr(120)},
		{ID: uuid.New(), Endpoint: "/api/v1/processes/analyze", Method: "POST", StatusCode: 200, ResponseTimeMs: intPtr(80)},
		{ID: uuid.New(), Endpoint: "/api/v1/automation/trigger", Method: "POST", StatusCode: 400, ResponseTimeMs: nil},
		{ID: uuid.New(), Endpoint: "/api/v1/automation/trigger", Method: "POST", StatusCode: 500, ResponseTimeMs: intPtr(200)},
	}
	for i := range logs {
		if err := db.Create(&logs[i]).Error; err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	stats, err := svc.GetAPIUsageStats(context.Background(), 7)
	if err != nil {
		t.Fatalf("usage stats: %v", err)
	}

	if stats.TotalRequests != 4 {
		t.Fatalf("expected 4 requests, got %d", stats.TotalRequests)
	}

	var histogramSum int64
	for _, n := range stats.StatusCodes {
		histogramSum += n
	}
	if histogramSum != stats.TotalRequests {
		t.Fatalf("status histogram sums to %d, total is %d", histogramSum, stats.TotalRequests)
	}
	if stats.StatusCodes["200"] != 2 || stats.StatusCodes["400"] != 1 || stats.StatusCodes["500"] != 1 {
		t.Fatalf("unexpected status histogram: %v", stats.StatusCodes)
	}

	if stats.EndpointUsage["/api/v1/processes/analyze"] != 2 {
		t.Fatalf("unexpected endpoint usage: %v", stats.EndpointUsage)
	}

	// Missing response time counts as zero: (120+80+0+200)/4.
	if stats.AverageResponseTime != 100 {
		t.Fatalf("expected average 100, got %v", stats.AverageResponseTime)
	}

	var daySum int64
	for _, n := range stats.DailyUsage {
		daySum += n
	}
	if daySum != 4 {
		t.Fatalf("daily usage sums to %d", daySum)
	}
}

func TestGetAPIUsageStatsEmptyWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminAnalyticsService(db, nil)

	stats, err := svc.GetAPIUsageStats(context.Background(), 30)
	if err != nil {
		t.Fatalf("usage stats: %v", err)
	}
	if stats.TotalRequests != 0 || stats.AverageResponseTime != 0 {
		t.Fatalf("expected zeroes on empty window, got %+v", stats)
	}
	if len(stats.DailyUsage) != 0 || len(stats.StatusCodes) != 0 {
		t.Fatalf("expected empty histograms, got %+v", stats)
	}
}

func TestGetUserGrowthStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminAnalyticsService(db, nil)

	seedProfile(t, db, "g1@example.com", models.RoleUser)
	seedProfile(t, db, "g2@example.com", models.RoleUser)
	old := seedProfile(t, db, "g3@example.com", models.RoleUser)
	// Push one signup outside the window.
	db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -60))

	stats, err := svc.GetUserGrowthStats(context.Background(), 30)
	if err != nil {
		t.Fatalf("growth stats: %v", err)
	}
	if stats.TotalNewUsers != 2 {
		t.Fatalf("expected 2 new users, got %d", stats.TotalNewUsers)
	}

	var daySum int64
	for _, n := range stats.DailySignups {
		daySum += n
	}
	if daySum != stats.TotalNewUsers {
		t.Fatalf("daily signups sum to %d, total is %d", daySum, stats.TotalNewUsers)
	}
}
