package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/somnolabs/sleep-coach/internal/domain"
	"github.com/somnolabs/sleep-coach/internal/langfuse"
)

// MockAnalysisService is a mock implementation of AnalysisService
type MockAnalysisService struct {
	analyzeCSVFunc  func(ctx context.Context, csvData string) (*domain.AnalysisResult, error)
	analyzeTextFunc func(ctx context.Context, text string) (*domain.AnalysisResult, error)

	csvInputs  []string
	textInputs []string
}

func (m *MockAnalysisService) AnalyzeCSV(ctx context.Context, csvData string) (*domain.AnalysisResult, error) {
	m.csvInputs = append(m.csvInputs, csvData)
	if m.analyzeCSVFunc != nil {
		return m.analyzeCSVFunc(ctx, csvData)
	}
	return sampleAnalysisResult(), nil
}

func (m *MockAnalysisService) AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	m.textInputs = append(m.textInputs, text)
	if m.analyzeTextFunc != nil {
		return m.analyzeTextFunc(ctx, text)
	}
	return sampleAnalysisResult(), nil
}

// sampleAnalysisResult returns a small healthy-week result.
func sampleAnalysisResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		ID:          uuid.New(),
		GeneratedAt: time.Date(2024, 7, 10, 8, 0, 0, 0, time.UTC),
		Records: []domain.SleepRecord{
			{Date: "Jul 03", SleepTime: "11:15 PM", WakeTime: "6:45 AM", DurationHours: 7.5},
			{Date: "Jul 04", SleepTime: "10:28 PM", WakeTime: "6:46 AM", DurationHours: 8.3},
		},
		Stats: domain.SleepStats{
			AverageDuration:        7.9,
			MinDuration:            7.5,
			MaxDuration:            8.3,
			DiagnosisMessages:      []string{"Your average sleep duration is within the healthy range."},
			RecommendationMessages: []string{},
		},
		RiskAssessments: []domain.RiskAssessment{
			{Category: domain.RiskNone, Message: "No major sleep disorder risks detected based on heuristic analysis. Continue healthy habits!"},
		},
		Narrative:       "Nice, steady week of sleep.",
		NarrativeStatus: domain.NarrativeStatusOK,
	}
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	enabled bool
	scores  []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return m.enabled }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	return "mock-trace-id", nil
}

func (m *MockLangfuseClient) CreateGeneration(ctx context.Context, in langfuse.GenerationInput) error {
	return nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return nil
}
