package services

import (
	"math/rand"
	"strconv"
	"time"
)

// The optimization endpoints fabricate plausible analysis payloads; there is
// no real optimizer behind them. The response shapes and value ranges are a
// published contract the playground UI and docs examples depend on, so they
// are preserved exactly, randomness included.

type AnalyzeStep struct {
	Name        string  `json:"name"`
	Duration    float64 `json:"duration"`
	SuccessRate float64 `json:"success_rate"`
	Cost        float64 `json:"cost"`
}

type AnalyzeRequest struct {
	Steps []AnalyzeStep `json:"steps"`
}

type CurrentMetrics struct {
	AvgCompletionTime float64 `json:"avg_completion_time"`
	SuccessRate       float64 `json:"success_rate"`
	TotalCost         float64 `json:"total_cost"`
}

type Bottleneck struct {
	Step         string `json:"step"`
	Issue        string `json:"issue"`
	Impact       string `json:"impact"`
	SuggestedFix string `json:"suggested_fix"`
}

type Recommendation struct {
	Type                 string `json:"type"`
	Description          string `json:"description"`
	EstimatedImprovement string `json:"estimated_improvement"`
	ImplementationEffort string `json:"implementation_effort"`
}

type PredictedImprovements struct {
	NewCompletionTime int     `json:"new_completion_time"`
	NewSuccessRate    float64 `json:"new_success_rate"`
	CostSavings       float64 `json:"cost_savings"`
}

type AnalysisResult struct {
	ProcessID             string                `json:"process_id"`
	OptimizationScore     int                   `json:"optimization_score"`
	CurrentMetrics        CurrentMetrics        `json:"current_metrics"`
	Bottlenecks           []Bottleneck          `json:"bottlenecks"`
	Recommendations       []Recommendation      `json:"recommendations"`
	PredictedImprovements PredictedImprovements `json:"predicted_improvements"`
}

type InsightMetrics struct {
	AvgCompletionTime int     `json:"avg_completion_time"`
	SuccessRate       float64 `json:"success_rate"`
	CostPerCompletion float64 `json:"cost_per_completion"`
	VolumeLast24h     int     `json:"volume_last_24h"`
}

type InsightPredictions struct {
	NextWeekVolume        int      `json:"next_week_volume"`
	OptimizationPotential string   `json:"optimization_potential"`
	RiskFactors           []string `json:"risk_factors"`
}

type InsightAlert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type InsightsResult struct {
	ProcessID    string             `json:"process_id"`
	CurrentScore int                `json:"current_score"`
	Trend        string             `json:"trend"`
	Metrics      InsightMetrics     `json:"metrics"`
	Predictions  InsightPredictions `json:"predictions"`
	Alerts       []InsightAlert     `json:"alerts"`
	LastUpdated  string             `json:"last_updated"`
}

type TriggerRequest struct {
	ProcessID      string `json:"process_id"`
	AutomationType string `json:"automation_type"`
	WebhookURL     string `json:"webhook_url"`
}

type AutomationStep struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type AutomationProgress struct {
	CurrentStep          string           `json:"current_step"`
	CompletionPercentage int              `json:"completion_percentage"`
	Steps                []AutomationStep `json:"steps"`
}

type AutomationResult struct {
	AutomationID         string             `json:"automation_id"`
	Status               string             `json:"status"`
	ProcessID            string             `json:"process_id"`
	AutomationType       string             `json:"automation_type"`
	EstimatedCompletion  string             `json:"estimated_completion"`
	ExpectedImprovements []string           `json:"expected_improvements"`
	Progress             AutomationProgress `json:"progress"`
	WebhookURL           *string            `json:"webhook_url"`
	CreatedAt            string             `json:"created_at"`
}

type OptimizationService struct{}

func NewOptimizationService() *OptimizationService {
	return &OptimizationService{}
}

// Analyze derives the aggregate metrics from the literal input steps and
// fills the rest with canned or randomized values. Zero-valued aggregates
// fall back to the hard-coded defaults, matching the published examples.
func (s *OptimizationService) Analyze(req *AnalyzeRequest) *AnalysisResult {
	var totalDuration, totalSuccess, totalCost float64
	for _, step := range req.Steps {
		totalDuration += step.Duration
		totalSuccess += step.SuccessRate
		totalCost += step.Cost
	}

	stepCount := len(req.Steps)
	if stepCount == 0 {
		stepCount = 1
	}

	avgCompletion := totalDuration
	if avgCompletion == 0 {
		avgCompletion = 2700
	}
	successRate := totalSuccess / float64(stepCount)
	if successRate == 0 {
		successRate = 0.91
	}
	if totalCost == 0 {
		totalCost = 6.50
	}

	bottleneckStep := "Email Verification"
	if len(req.Steps) > 1 && req.Steps[1].Name != "" {
		bottleneckStep = req.Steps[1].Name
	}

	return &AnalysisResult{
		ProcessID:         randomID("proc_"),
		OptimizationScore: rand.Intn(30) + 70,
		CurrentMetrics: CurrentMetrics{
			AvgCompletionTime: avgCompletion,
			SuccessRate:       successRate,
			TotalCost:         totalCost,
		},
		Bottlenecks: []Bottleneck{
			{
				Step:         bottleneckStep,
				Issue:        "High abandonment rate",
				Impact:       "medium",
				SuggestedFix: "Implement automated email reminders",
			},
		},
		Recommendations: []Recommendation{
			{
				Type:                 "automation",
				Description:          "Add automated email reminders after 30 minutes",
				EstimatedImprovement: "15% success rate increase",
				ImplementationEffort: "low",
			},
			{
				Type:                 "workflow_optimization",
				Description:          "Combine profile setup with account creation",
				EstimatedImprovement: "25% time reduction",
				ImplementationEffort: "medium",
			},
		},
		PredictedImprovements: PredictedImprovements{
			NewCompletionTime: int(avgCompletion * 0.75),
			NewSuccessRate:    0.96,
			CostSavings:       1.20,
		},
	}
}

// Insights returns a randomized point-in-time snapshot for a process.
func (s *OptimizationService) Insights(processID string) *InsightsResult {
	trend := "stable"
	if rand.Float64() > 0.5 {
		trend = "improving"
	}

	riskFactors := []string{"peak_traffic_monday", "holiday_season"}
	alerts := []InsightAlert{
		{
			Type:     "performance",
			Message:  "Success rate dropped 3% in last hour",
			Severity: "medium",
		},
		{
			Type:     "volume",
			Message:  "Traffic spike detected - 25% above normal",
			Severity: "low",
		},
	}

	return &InsightsResult{
		ProcessID:    processID,
		CurrentScore: rand.Intn(30) + 70,
		Trend:        trend,
		Metrics: InsightMetrics{
			AvgCompletionTime: rand.Intn(1000) + 1500,
			SuccessRate:       rand.Float64()*0.2 + 0.8,
			CostPerCompletion: rand.Float64()*10 + 5,
			VolumeLast24h:     rand.Intn(200) + 50,
		},
		Predictions: InsightPredictions{
			NextWeekVolume:        rand.Intn(1000) + 500,
			OptimizationPotential: strconv.Itoa(rand.Intn(30)+10) + "%",
			RiskFactors:           riskFactors[:rand.Intn(2)+1],
		},
		Alerts:      alerts[:rand.Intn(2)+1],
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// TriggerAutomation acknowledges a trigger request without persisting
// anything; each call is independent and stateless.
func (s *OptimizationService) TriggerAutomation(req *TriggerRequest) *AutomationResult {
	processID := req.ProcessID
	if processID == "" {
		processID = randomID("proc_")
	}
	automationType := req.AutomationType
	if automationType == "" {
		automationType = "workflow_optimization"
	}

	var webhookURL *string
	if req.WebhookURL != "" {
		webhookURL = &req.WebhookURL
	}

	now := time.Now().UTC()
	return &AutomationResult{
		AutomationID:        randomID("auto_"),
		Status:              "initiated",
		ProcessID:           processID,
		AutomationType:      automationType,
		EstimatedCompletion: now.Add(30 * time.Minute).Format(time.RFC3339),
		ExpectedImprovements: []string{
			"Reduce Email Verification step duration by 25%",
			"Increase overall success rate to 94%",
			"Decrease cost per completion by $1.20",
		},
		Progress: AutomationProgress{
			CurrentStep:          "analyzing_current_state",
			CompletionPercentage: rand.Intn(20) + 5,
			Steps: []AutomationStep{
				{Name: "analyzing_current_state", Status: "in_progress"},
				{Name: "identifying_bottlenecks", Status: "pending"},
				{Name: "generating_optimizations", Status: "pending"},
				{Name: "implementing_changes", Status: "pending"},
				{Name: "validating_results", Status: "pending"},
			},
		},
		WebhookURL: webhookURL,
		CreatedAt:  now.Format(time.RFC3339),
	}
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomID(prefix string) string {
	b := make([]byte, 13)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return prefix + string(b)
}
