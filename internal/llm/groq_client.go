package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrCoachUnavailable indicates the narrative service is not configured or unavailable.
	ErrCoachUnavailable = errors.New("coach narrative service unavailable")
	// ErrCoachRequest indicates an error during the completion request.
	ErrCoachRequest = errors.New("coach narrative request failed")
	// ErrCoachResponse indicates an unusable completion response.
	ErrCoachResponse = errors.New("unusable coach narrative response")
)

const (
	// DefaultGroqBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	// DefaultGroqModel is used when no model is configured.
	DefaultGroqModel = "llama-3.3-70b-versatile"
	// DefaultRequestTimeout bounds one narrative completion call.
	DefaultRequestTimeout = 30 * time.Second
)

// NarrativeLLM is the interface for generating the coaching narrative.
type NarrativeLLM interface {
	// GenerateNarrative sends one prompt and returns the completion text.
	GenerateNarrative(ctx context.Context, prompt string) (string, error)
	// Model reports the configured model identifier.
	Model() string
}

// GroqClient implements NarrativeLLM against Groq's OpenAI-compatible API.
type GroqClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewGroqClient creates a narrative client. Returns nil if apiKey is empty;
// every call on a nil client reports ErrCoachUnavailable, which callers
// surface as the "AI unavailable" state.
func NewGroqClient(apiKey, baseURL, model string, timeout time.Duration) *GroqClient {
	if apiKey == "" {
		return nil
	}

	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if model == "" {
		model = DefaultGroqModel
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &GroqClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

func (c *GroqClient) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// GenerateNarrative calls the completion API once, bounded by the client
// timeout. Empty completions are errors; callers treat every failure here as
// recoverable and keep the deterministic results.
func (c *GroqClient) GenerateNarrative(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", ErrCoachUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoachRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrCoachResponse)
	}

	narrative := strings.TrimSpace(resp.Choices[0].Message.Content)
	if narrative == "" {
		return "", fmt.Errorf("%w: empty completion", ErrCoachResponse)
	}
	return narrative, nil
}
