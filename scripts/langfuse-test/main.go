// Script to test Langfuse connectivity by creating a test trace with an
// attached generation.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/somnolabs/sleep-coach/internal/langfuse"
)

func main() {
	cfg := langfuse.Config{
		BaseURL:     getEnv("LANGFUSE_BASE_URL", "http://localhost:3001"),
		PublicKey:   os.Getenv("LANGFUSE_PUBLIC_KEY"),
		SecretKey:   os.Getenv("LANGFUSE_SECRET_KEY"),
		Environment: getEnv("LANGFUSE_ENV", "development"),
	}

	fmt.Println("=== Langfuse Connection Test ===")
	fmt.Printf("Base URL:    %s\n", cfg.BaseURL)
	fmt.Printf("Public Key:  %s\n", maskKey(cfg.PublicKey))
	fmt.Printf("Secret Key:  %s\n", maskKey(cfg.SecretKey))
	fmt.Printf("Environment: %s\n", cfg.Environment)
	fmt.Println()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	client := langfuse.NewClient(cfg, zapLogger.Sugar())

	if !client.IsEnabled() {
		log.Fatal("Langfuse client is disabled. Check your env vars.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Create a test trace
	start := time.Now()
	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		Name: "connectivity-test",
		Input: map[string]any{
			"message": "Hello from langfuse-test script",
			"time":    start.Format(time.RFC3339),
		},
		Output: map[string]any{
			"status": "success",
		},
		Tags: []string{"test", "manual"},
	})
	if err != nil {
		log.Fatalf("Failed to create trace: %v", err)
	}

	// Attach a sample generation, the same event shape the analysis service
	// records for coach narratives.
	if err := client.CreateGeneration(ctx, langfuse.GenerationInput{
		TraceID:   traceID,
		Name:      "test-generation",
		Model:     "manual-test",
		Input:     "ping",
		Output:    "pong",
		StartTime: start,
		EndTime:   time.Now(),
	}); err != nil {
		log.Fatalf("Failed to create generation: %v", err)
	}

	// Ingestion is asynchronous; give the batches a moment to flush before
	// the process exits.
	time.Sleep(2 * time.Second)

	fmt.Println("✓ Test trace created successfully!")
	fmt.Printf("  Trace ID: %s\n", traceID)
	fmt.Printf("  View at:  %s/trace/%s\n", cfg.BaseURL, traceID)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
