package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/somnolabs/sleep-coach/internal/domain"
)

const (
	// ShortNightHours marks a night as short when its duration is below it.
	ShortNightHours = 7.0
	// HealthyAverageMin and HealthyAverageMax bound the healthy average band.
	// The bounds themselves are healthy: 7.0 is not insufficient, 9.0 is not
	// excessive.
	HealthyAverageMin = 7.0
	HealthyAverageMax = 9.0
	// ShortNightAlertCount is the short-night count above which the
	// consistency message fires.
	ShortNightAlertCount = 2
)

// Diagnosis and recommendation wording is fixed; append order is part of the
// contract.
const (
	msgInsufficientAverage = "You are not getting enough average sleep. Chronic sleep deprivation can impact health."
	msgExcessiveAverage    = "You are sleeping more than the recommended amount. Excessive sleep can also be a sign of underlying issues."
	msgHealthyAverage      = "Your average sleep duration is within the healthy range."

	recAimSevenToNine     = "Aim for at least 7-9 hours of sleep per night."
	recKeepWithinRange    = "Try to keep your sleep within the 7-9 hour range."
	recConsistentSchedule = "Try to maintain a more consistent sleep schedule."
)

// StatsService computes aggregate duration statistics and rule-based advice
// over one week of records.
type StatsService interface {
	// Compute aggregates the record set. All values are neutral zeros and the
	// message lists are empty when the set is empty.
	Compute(ctx context.Context, records []domain.SleepRecord) domain.SleepStats
}

type statsService struct{}

// NewStatsService creates a new StatsService.
func NewStatsService() StatsService {
	return &statsService{}
}

func (s *statsService) Compute(ctx context.Context, records []domain.SleepRecord) domain.SleepStats {
	_, span := otel.Tracer("sleep-coach-api/stats").Start(ctx, "StatsService.Compute",
		trace.WithAttributes(attribute.Int("records.count", len(records))),
	)
	defer span.End()

	stats := computeDurationStats(records)
	applyDiagnosisRules(&stats, len(records))

	if outputJSON, err := json.Marshal(stats); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return stats
}

// computeDurationStats fills the numeric aggregates. Average, min and max are
// all zero for an empty set rather than an error.
func computeDurationStats(records []domain.SleepRecord) domain.SleepStats {
	stats := domain.SleepStats{
		DiagnosisMessages:      []string{},
		RecommendationMessages: []string{},
	}
	if len(records) == 0 {
		return stats
	}

	sum := 0.0
	minVal := records[0].DurationHours
	maxVal := records[0].DurationHours
	short := 0

	for _, rec := range records {
		d := rec.DurationHours
		sum += d
		if d < minVal {
			minVal = d
		}
		if d > maxVal {
			maxVal = d
		}
		if d < ShortNightHours {
			short++
		}
	}

	stats.AverageDuration = sum / float64(len(records))
	stats.MinDuration = minVal
	stats.MaxDuration = maxVal
	stats.ShortNightCount = short
	return stats
}

// applyDiagnosisRules appends the rule-based messages in fixed order. The
// average band rule and the short-night rule are independent and cumulative;
// neither fires on an empty set.
func applyDiagnosisRules(stats *domain.SleepStats, recordCount int) {
	if recordCount == 0 {
		return
	}

	switch {
	case stats.AverageDuration < HealthyAverageMin:
		stats.DiagnosisMessages = append(stats.DiagnosisMessages, msgInsufficientAverage)
		stats.RecommendationMessages = append(stats.RecommendationMessages, recAimSevenToNine)
	case stats.AverageDuration > HealthyAverageMax:
		stats.DiagnosisMessages = append(stats.DiagnosisMessages, msgExcessiveAverage)
		stats.RecommendationMessages = append(stats.RecommendationMessages, recKeepWithinRange)
	default:
		stats.DiagnosisMessages = append(stats.DiagnosisMessages, msgHealthyAverage)
	}

	if stats.ShortNightCount > ShortNightAlertCount {
		stats.DiagnosisMessages = append(stats.DiagnosisMessages,
			fmt.Sprintf("You had %d nights with less than 7 hours of sleep.", stats.ShortNightCount))
		stats.RecommendationMessages = append(stats.RecommendationMessages, recConsistentSchedule)
	}
}
