// Script to test coach narrative generation against the configured Groq
// endpoint, using the bundled example week.
// Usage: go run scripts/coach-test/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/somnolabs/sleep-coach/internal/config"
	"github.com/somnolabs/sleep-coach/internal/exampledata"
	"github.com/somnolabs/sleep-coach/internal/llm"
	"github.com/somnolabs/sleep-coach/internal/normalizer"
)

func main() {
	cfg := config.Load()

	fmt.Println("=== Coach Narrative Test ===")
	fmt.Printf("Base URL: %s\n", cfg.GroqBaseURL)
	fmt.Printf("Model:    %s\n", cfg.GroqModel)
	fmt.Println()

	coach := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.CoachTimeout)
	if coach == nil {
		log.Fatal("GROQ_API_KEY is not set")
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	normalized, err := normalizer.New(zapLogger.Sugar()).Tabular(strings.NewReader(exampledata.WeekCSV))
	if err != nil {
		log.Fatalf("Failed to normalize example week: %v", err)
	}

	prompt := llm.NewPromptBuilder("").Build(normalized.Records())
	fmt.Printf("Prompt (%d bytes):\n%s\n\n", len(prompt), prompt)

	start := time.Now()
	narrative, err := coach.GenerateNarrative(context.Background(), prompt)
	if err != nil {
		log.Fatalf("Failed to generate narrative: %v", err)
	}

	fmt.Printf("✓ Narrative generated in %s\n\n", time.Since(start).Round(time.Millisecond))
	fmt.Println(narrative)
}
