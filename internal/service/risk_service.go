package service

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/somnolabs/sleep-coach/internal/domain"
)

const (
	// Insomnia triggers on enough very short nights or enough late onsets.
	insomniaShortSleepHours  = 6.0
	insomniaShortSleepNights = 3
	insomniaLateOnsetNights  = 3

	// Hypersomnia triggers on enough very long nights.
	hypersomniaHours  = 9.0
	hypersomniaNights = 2

	// Irregular wake triggers when parsed wake times spread wider than this,
	// strictly.
	wakeSpreadHours = 2.0
)

const (
	msgInsomniaRisk    = "Insomnia risk: Detected multiple nights with short sleep or late sleep onset. Consider improving sleep hygiene."
	msgHypersomniaRisk = "Hypersomnia/Apnea risk: Several nights with very long sleep duration. If you feel tired during daytime, consider screening."
	msgIrregularWake   = "Irregular Wake Patterns: Your wake times vary by more than 2 hours. Consistency helps circadian rhythm."
	msgNoMajorRisks    = "No major sleep disorder risks detected based on heuristic analysis. Continue healthy habits!"
)

// RiskService screens a week of records for sleep disorder risk patterns.
type RiskService interface {
	// Evaluate runs the heuristic checks in fixed order: insomnia, then
	// hypersomnia/apnea, then irregular wake patterns. The fallback entry is
	// emitted if and only if none of the three triggered. An empty record set
	// yields an empty list.
	Evaluate(ctx context.Context, records []domain.SleepRecord) []domain.RiskAssessment
}

type riskService struct{}

// NewRiskService creates a new RiskService.
func NewRiskService() RiskService {
	return &riskService{}
}

func (s *riskService) Evaluate(ctx context.Context, records []domain.SleepRecord) []domain.RiskAssessment {
	_, span := otel.Tracer("sleep-coach-api/risk").Start(ctx, "RiskService.Evaluate",
		trace.WithAttributes(attribute.Int("records.count", len(records))),
	)
	defer span.End()

	assessments := []domain.RiskAssessment{}
	if len(records) == 0 {
		return assessments
	}

	if insomniaTriggered(records) {
		assessments = append(assessments, domain.RiskAssessment{
			Category: domain.RiskInsomnia,
			Message:  msgInsomniaRisk,
		})
	}
	if hypersomniaTriggered(records) {
		assessments = append(assessments, domain.RiskAssessment{
			Category: domain.RiskHypersomniaApnea,
			Message:  msgHypersomniaRisk,
		})
	}
	if irregularWakeTriggered(records) {
		assessments = append(assessments, domain.RiskAssessment{
			Category: domain.RiskIrregularWake,
			Message:  msgIrregularWake,
		})
	}
	if len(assessments) == 0 {
		assessments = append(assessments, domain.RiskAssessment{
			Category: domain.RiskNone,
			Message:  msgNoMajorRisks,
		})
	}

	if outputJSON, err := json.Marshal(assessments); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return assessments
}

// insomniaTriggered checks for repeated very short nights or repeated late
// sleep onsets. Records without a parsed sleep time count toward neither
// side.
func insomniaTriggered(records []domain.SleepRecord) bool {
	shortNights := 0
	lateOnsets := 0
	for _, rec := range records {
		if rec.SleepClock == nil {
			continue
		}
		if rec.DurationHours < insomniaShortSleepHours {
			shortNights++
		}
		if isLateOnset(rec.SleepClock) {
			lateOnsets++
		}
	}
	return shortNights >= insomniaShortSleepNights || lateOnsets >= insomniaLateOnsetNights
}

// isLateOnset reports whether a bedtime falls between midnight and 4:59 AM.
func isLateOnset(c *domain.ClockTime) bool {
	if c.Meridiem != domain.MeridiemAM {
		return false
	}
	return c.Hour == 12 || (c.Hour >= 1 && c.Hour <= 4)
}

func hypersomniaTriggered(records []domain.SleepRecord) bool {
	longNights := 0
	for _, rec := range records {
		if rec.DurationHours > hypersomniaHours {
			longNights++
		}
	}
	return longNights >= hypersomniaNights
}

// irregularWakeTriggered compares the earliest and latest parsed wake times
// at face value. Clock values are not adjusted across the day boundary, so
// 12:30 AM and 11:30 PM sit 23 hours apart.
func irregularWakeTriggered(records []domain.SleepRecord) bool {
	wakeHours := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.WakeClock == nil {
			continue
		}
		wakeHours = append(wakeHours, rec.WakeClock.DecimalHours())
	}
	if len(wakeHours) < 2 {
		return false
	}

	minVal := wakeHours[0]
	maxVal := wakeHours[0]
	for _, h := range wakeHours[1:] {
		if h < minVal {
			minVal = h
		}
		if h > maxVal {
			maxVal = h
		}
	}
	return maxVal-minVal > wakeSpreadHours
}
