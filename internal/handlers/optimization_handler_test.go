package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/services"
)

func setupOptimizationApp() *fiber.App {
	h := NewOptimizationHandler(services.NewOptimizationService())
	app := fiber.New()
	app.Post("/api/v1/processes/analyze", h.Analyze)
	app.Get("/api/v1/processes/:id/insights", h.Insights)
	app.Post("/api/v1/automation/trigger", h.Trigger)
	return app
}

func TestAnalyzeEndpoint(t *testing.T) {
	app := setupOptimizationApp()

	body := `{"steps":[
		{"name":"Account Creation","duration":100,"success_rate":0.85,"cost":1},
		{"name":"Email Verification","duration":100,"success_rate":0.85,"cost":2},
		{"name":"Profile Setup","duration":100,"success_rate":0.85,"cost":3}
	]}`
	req := httptest.NewRequest("POST", "/api/v1/processes/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result services.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.CurrentMetrics.AvgCompletionTime != 300 {
		t.Fatalf("expected completion time 300, got %v", result.CurrentMetrics.AvgCompletionTime)
	}
	if !strings.HasPrefix(result.ProcessID, "proc_") {
		t.Fatalf("expected proc_ id, got %q", result.ProcessID)
	}
	if result.Bottlenecks[0].Step != "Email Verification" {
		t.Fatalf("expected second step as bottleneck, got %q", result.Bottlenecks[0].Step)
	}
}

func TestAnalyzeEndpointRejectsBadBody(t *testing.T) {
	app := setupOptimizationApp()

	req := httptest.NewRequest("POST", "/api/v1/processes/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Invalid request body" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestInsightsEndpointRequiresQueryID(t *testing.T) {
	app := setupOptimizationApp()

	// The id path segment alone is not enough; the id query parameter is the
	// one the endpoint reads.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/processes/proc_123/insights", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Process ID is required" {
		t.Fatalf("unexpected error body: %v", body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/processes/proc_123/insights?id=proc_123", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result services.InsightsResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.ProcessID != "proc_123" {
		t.Fatalf("expected id passthrough, got %q", result.ProcessID)
	}
}

func TestTriggerEndpoint(t *testing.T) {
	app := setupOptimizationApp()

	body := `{"process_id":"proc_9","automation_type":"notification_automation","webhook_url":"https://example.com/hook"}`
	req := httptest.NewRequest("POST", "/api/v1/automation/trigger", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result services.AutomationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Status != "initiated" {
		t.Fatalf("expected initiated, got %q", result.Status)
	}
	if !strings.HasPrefix(result.AutomationID, "auto_") {
		t.Fatalf("expected auto_ id, got %q", result.AutomationID)
	}
	if result.WebhookURL == nil || *result.WebhookURL != "https://example.com/hook" {
		t.Fatalf("expected webhook echoed, got %v", result.WebhookURL)
	}
}
