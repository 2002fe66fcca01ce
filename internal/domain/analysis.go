package domain

import (
	"time"

	"github.com/google/uuid"
)

// RiskCategory labels a heuristic sleep-disorder risk pattern.
// @Description Heuristic risk category; non-clinical.
type RiskCategory string

const (
	RiskInsomnia         RiskCategory = "insomnia"
	RiskHypersomniaApnea RiskCategory = "hypersomnia_apnea"
	RiskIrregularWake    RiskCategory = "irregular_wake"
	// RiskNone is the fallback emitted when no rule triggered.
	RiskNone RiskCategory = "none"
)

// NarrativeStatus reports whether the coaching narrative was generated.
// @Description "ok" when the AI narrative was generated, "unavailable" when the run degraded to statistics only.
type NarrativeStatus string

const (
	NarrativeStatusOK          NarrativeStatus = "ok"
	NarrativeStatusUnavailable NarrativeStatus = "unavailable"
)

// RiskAssessment is one labeled risk message.
// @Description Labeled heuristic risk message.
type RiskAssessment struct {
	// Risk category label
	Category RiskCategory `json:"category" example:"insomnia"`
	// Fixed-template supportive message
	Message string `json:"message" example:"Insomnia risk: Detected multiple nights with short sleep or late sleep onset. Consider improving sleep hygiene."`
}

// SleepStats holds the aggregate statistics and rule-based messages for one
// analysis run. All numeric values are zero when the record set is empty.
// @Description Aggregate duration statistics with rule-based diagnosis messages.
type SleepStats struct {
	// Mean duration in hours (0 when no records)
	AverageDuration float64 `json:"average_duration" example:"7.8"`
	// Shortest night in hours (0 when no records)
	MinDuration float64 `json:"min_duration" example:"5.6"`
	// Longest night in hours (0 when no records)
	MaxDuration float64 `json:"max_duration" example:"10.9"`
	// Count of nights under 7 hours
	ShortNightCount int `json:"short_night_count" example:"2"`
	// Ordered diagnosis sentences, appended by rule order
	DiagnosisMessages []string `json:"diagnosis_messages"`
	// Ordered recommendation sentences, appended by rule order
	RecommendationMessages []string `json:"recommendation_messages"`
}

// AnalysisResult is the complete outcome of one analysis run. It is created
// fresh per invocation and never persisted.
type AnalysisResult struct {
	ID          uuid.UUID
	GeneratedAt time.Time

	Records     []SleepRecord
	SkippedRows int

	Stats           SleepStats
	RiskAssessments []RiskAssessment

	Narrative       string
	NarrativeStatus NarrativeStatus
}

// AnalyzeRequest is the JSON request body for running an analysis. Exactly
// one of csv or text must be provided.
// @Description Analysis input: either a CSV document or a free-text check-in blob.
type AnalyzeRequest struct {
	// Tabular input with columns date, sleep, wake, duration
	CSV string `json:"csv,omitempty" validate:"required_without=Text" example:"date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5"`
	// Free-text check-in fragments ("Jul 09: Slept at 8:14 PM, woke at 7:12 AM (10.9 hours)")
	Text string `json:"text,omitempty" validate:"required_without=CSV" example:"Last night: Slept at 12:14 AM, woke at 7:55 AM (7.7 hours)"`
}

// AnalysisResponse is the response body for the analysis endpoint.
// @Description Full analysis outcome: normalized records, statistics, risks and narrative.
type AnalysisResponse struct {
	// Unique identifier of this run
	ID uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Time the analysis completed
	GeneratedAt time.Time `json:"generated_at" example:"2024-07-10T08:12:00Z"`
	// Normalized records in input order
	Records []SleepRecord `json:"records"`
	// Count of rows/fragments dropped during normalization
	SkippedRows int `json:"skipped_rows" example:"0"`
	// Aggregate statistics and diagnosis messages
	Stats SleepStats `json:"stats"`
	// Ordered risk assessments (insomnia, hypersomnia/apnea, irregular wake, or the fallback)
	RiskAssessments []RiskAssessment `json:"risk_assessments"`
	// Coaching narrative text; empty when status is "unavailable"
	Narrative string `json:"narrative,omitempty"`
	// Narrative generation status
	NarrativeStatus NarrativeStatus `json:"narrative_status" example:"ok"`
	// Trace ID for feedback (only present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

func (r *AnalysisResult) ToResponse() AnalysisResponse {
	return AnalysisResponse{
		ID:              r.ID,
		GeneratedAt:     r.GeneratedAt,
		Records:         r.Records,
		SkippedRows:     r.SkippedRows,
		Stats:           r.Stats,
		RiskAssessments: r.RiskAssessments,
		Narrative:       r.Narrative,
		NarrativeStatus: r.NarrativeStatus,
	}
}
