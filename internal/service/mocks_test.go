package service

import (
	"context"

	"github.com/somnolabs/sleep-coach/internal/domain"
	"github.com/somnolabs/sleep-coach/internal/langfuse"
)

// MockNarrativeLLM is a mock implementation of llm.NarrativeLLM
type MockNarrativeLLM struct {
	narrative string
	model     string
	err       error
	prompts   []string
}

func NewMockNarrativeLLM(narrative string) *MockNarrativeLLM {
	return &MockNarrativeLLM{narrative: narrative, model: "mock-coach-model"}
}

func (m *MockNarrativeLLM) GenerateNarrative(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.narrative, nil
}

func (m *MockNarrativeLLM) Model() string {
	return m.model
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	enabled     bool
	traces      []langfuse.TraceInput
	generations []langfuse.GenerationInput
	scores      []langfuse.ScoreInput
}

func NewMockLangfuseClient(enabled bool) *MockLangfuseClient {
	return &MockLangfuseClient{enabled: enabled}
}

func (m *MockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traces = append(m.traces, in)
	if in.ID != "" {
		return in.ID, nil
	}
	return "mock-trace-id", nil
}

func (m *MockLangfuseClient) CreateGeneration(ctx context.Context, in langfuse.GenerationInput) error {
	m.generations = append(m.generations, in)
	return nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return nil
}

// Shared record fixtures

func clockAt(hour, minute int, meridiem domain.Meridiem) *domain.ClockTime {
	return &domain.ClockTime{Hour: hour, Minute: minute, Meridiem: meridiem}
}

// nightRecord builds a record whose clock times never parsed.
func nightRecord(date string, duration float64) domain.SleepRecord {
	return domain.SleepRecord{Date: date, DurationHours: duration}
}

// timedRecord builds a record with parsed sleep and wake clocks.
func timedRecord(date string, sleep, wake *domain.ClockTime, duration float64) domain.SleepRecord {
	rec := domain.SleepRecord{Date: date, DurationHours: duration, SleepClock: sleep, WakeClock: wake}
	if sleep != nil {
		rec.SleepTime = sleep.String()
	}
	if wake != nil {
		rec.WakeTime = wake.String()
	}
	return rec
}

// sevenNights is the example week used across service tests.
func sevenNights() []domain.SleepRecord {
	return []domain.SleepRecord{
		timedRecord("Jul 09", clockAt(8, 14, domain.MeridiemPM), clockAt(7, 12, domain.MeridiemAM), 10.9),
		timedRecord("Jul 08", clockAt(12, 18, domain.MeridiemAM), clockAt(7, 45, domain.MeridiemAM), 7.4),
		timedRecord("Jul 07", clockAt(11, 54, domain.MeridiemPM), clockAt(5, 31, domain.MeridiemAM), 5.6),
		timedRecord("Jul 06", clockAt(1, 0, domain.MeridiemAM), clockAt(6, 49, domain.MeridiemAM), 5.8),
		timedRecord("Jul 05", clockAt(1, 1, domain.MeridiemAM), clockAt(9, 58, domain.MeridiemAM), 8.9),
		timedRecord("Jul 04", clockAt(10, 28, domain.MeridiemPM), clockAt(6, 46, domain.MeridiemAM), 8.3),
		timedRecord("Jul 03", clockAt(12, 14, domain.MeridiemAM), clockAt(7, 55, domain.MeridiemAM), 7.7),
	}
}
