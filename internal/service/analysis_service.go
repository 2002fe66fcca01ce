package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/somnolabs/sleep-coach/internal/domain"
	"github.com/somnolabs/sleep-coach/internal/langfuse"
	"github.com/somnolabs/sleep-coach/internal/llm"
	"github.com/somnolabs/sleep-coach/internal/normalizer"
)

// AnalysisService runs the full pipeline over one week of input: normalize,
// aggregate, screen for risks, narrate.
type AnalysisService interface {
	// AnalyzeCSV analyzes a tabular document. A schema-level failure (missing
	// columns, unreadable header) aborts the whole batch.
	AnalyzeCSV(ctx context.Context, csvData string) (*domain.AnalysisResult, error)
	// AnalyzeText analyzes a free-text check-in blob.
	AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error)
}

type analysisService struct {
	normalizer   *normalizer.Normalizer
	statsService StatsService
	riskService  RiskService
	prompts      *llm.PromptBuilder
	coach        llm.NarrativeLLM
	langfuse     langfuse.Client
	logger       *zap.SugaredLogger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	n *normalizer.Normalizer,
	statsService StatsService,
	riskService RiskService,
	prompts *llm.PromptBuilder,
	coach llm.NarrativeLLM,
	langfuseClient langfuse.Client,
	logger *zap.SugaredLogger,
) AnalysisService {
	return &analysisService{
		normalizer:   n,
		statsService: statsService,
		riskService:  riskService,
		prompts:      prompts,
		coach:        coach,
		langfuse:     langfuseClient,
		logger:       logger,
	}
}

func (s *analysisService) AnalyzeCSV(ctx context.Context, csvData string) (*domain.AnalysisResult, error) {
	normalized, err := s.normalizer.Tabular(strings.NewReader(csvData))
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, "csv", normalized)
}

func (s *analysisService) AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	return s.analyze(ctx, "text", s.normalizer.FreeText(text))
}

func (s *analysisService) analyze(ctx context.Context, source string, normalized normalizer.Result) (*domain.AnalysisResult, error) {
	ctx, span := otel.Tracer("sleep-coach-api/analysis").Start(ctx, "AnalysisService.Analyze",
		trace.WithAttributes(
			attribute.String("input.source", source),
			attribute.Int("input.rows", len(normalized.Outcomes)),
		),
	)
	defer span.End()

	records := normalized.Records()
	if len(records) == 0 {
		return nil, domain.ErrNoData
	}

	if inputJSON, err := json.Marshal(records); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	result := &domain.AnalysisResult{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Records:     records,
		SkippedRows: normalized.SkippedCount(),
	}

	result.Stats = s.statsService.Compute(ctx, records)
	result.RiskAssessments = s.riskService.Evaluate(ctx, records)

	s.generateNarrative(ctx, result)

	return result, nil
}

// generateNarrative asks the coach model for the narrative. A coach failure
// never fails the analysis; the result degrades to statistics only.
func (s *analysisService) generateNarrative(ctx context.Context, result *domain.AnalysisResult) {
	prompt := s.prompts.Build(result.Records)

	start := time.Now()
	narrative, err := s.coach.GenerateNarrative(ctx, prompt)
	s.recordGeneration(ctx, prompt, narrative, start, err)

	if err != nil {
		if errors.Is(err, llm.ErrCoachUnavailable) {
			s.logger.Infow("coach narrative skipped", "reason", "no coach model configured")
		} else {
			s.logger.Warnw("coach narrative failed, returning deterministic results only", "error", err)
		}
		result.NarrativeStatus = domain.NarrativeStatusUnavailable
		return
	}

	result.Narrative = narrative
	result.NarrativeStatus = domain.NarrativeStatusOK
}

// recordGeneration reports the coach call to Langfuse. Skipped when the
// client is disabled, when the coach was never configured, or when no trace
// is active.
func (s *analysisService) recordGeneration(ctx context.Context, prompt, narrative string, start time.Time, genErr error) {
	if s.langfuse == nil || !s.langfuse.IsEnabled() {
		return
	}
	if errors.Is(genErr, llm.ErrCoachUnavailable) {
		return
	}
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.HasTraceID() {
		return
	}

	output := narrative
	if genErr != nil {
		output = "error: " + genErr.Error()
	}
	_ = s.langfuse.CreateGeneration(ctx, langfuse.GenerationInput{
		TraceID:   spanCtx.TraceID().String(),
		Name:      "coach-narrative",
		Model:     s.coach.Model(),
		Input:     prompt,
		Output:    output,
		StartTime: start,
		EndTime:   time.Now(),
	})
}
