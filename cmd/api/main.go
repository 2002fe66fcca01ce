// Sleep Coach API
//
// REST API turning a week of sleep records into coaching output.
//
//	@title			Sleep Coach API
//	@version		1.0
//	@description	Analyze a week of sleep records: duration statistics, rule-based diagnosis, heuristic risk screening, and an AI coaching narrative.
//
//	@BasePath	/v1
//
//	@tag.name			analyses
//	@tag.description	Sleep analysis and coaching endpoints
//
//	@tag.name			datasets
//	@tag.description	Bundled example data
package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/somnolabs/sleep-coach/internal/api"
	"github.com/somnolabs/sleep-coach/internal/api/handler"
	"github.com/somnolabs/sleep-coach/internal/config"
	"github.com/somnolabs/sleep-coach/internal/langfuse"
	"github.com/somnolabs/sleep-coach/internal/llm"
	"github.com/somnolabs/sleep-coach/internal/normalizer"
	"github.com/somnolabs/sleep-coach/internal/report"
	"github.com/somnolabs/sleep-coach/internal/service"
	"github.com/somnolabs/sleep-coach/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize tracing (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "sleep-coach-api")
	if err != nil {
		logger.Fatalw("Failed to initialize tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warnw("tracer shutdown failed", "error", err)
		}
	}()

	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}, logger)

	// Initialize the coach model client (may be nil if not configured)
	coach := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.CoachTimeout)
	if coach == nil {
		logger.Warn("GROQ_API_KEY not configured, coaching narrative will be unavailable")
	}

	prompts := llm.NewPromptBuilder(loadCoachTemplate(ctx, cfg, logger))

	// Initialize services
	norm := normalizer.New(logger)
	analysisService := service.NewAnalysisService(
		norm,
		service.NewStatsService(),
		service.NewRiskService(),
		prompts,
		coach,
		langfuseClient,
		logger,
	)

	reportGenerator, err := report.NewGenerator()
	if err != nil {
		logger.Fatalw("Failed to parse report template", "error", err)
	}

	// Initialize handlers
	analysisHandler := handler.NewAnalysisHandler(analysisService, reportGenerator, langfuseClient)
	datasetHandler := handler.NewDatasetHandler()

	// Setup router
	router := api.NewRouter(analysisHandler, datasetHandler, logger)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	logger.Infow("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		logger.Fatalw("Server failed", "error", err)
	}
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// loadCoachTemplate loads the managed coach template when one is configured.
// Every failure falls back to the built-in template: a bad template must not
// keep the service from starting.
func loadCoachTemplate(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) string {
	if cfg.CoachPromptName == "" && cfg.CoachPromptFile == "" {
		return ""
	}

	loaded, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.CoachPromptName,
		PromptLabel: "production",
		SavePath:    cfg.CoachPromptFile,
	}, logger)
	if err != nil {
		logger.Warnw("coach prompt load failed, using built-in template", "error", err)
		return ""
	}
	if !strings.Contains(loaded, llm.DataPlaceholder) {
		logger.Warnw("coach prompt template missing data placeholder, using built-in template",
			"placeholder", llm.DataPlaceholder)
		return ""
	}
	return loaded
}
