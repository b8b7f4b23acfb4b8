package out

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiGenerator produces model output through the Gemini API, with a
// circuit breaker so a flapping upstream trips fast instead of stalling the
// interview flow.
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
	breaker   *gobreaker.CircuitBreaker[string]
	logger    *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, breakerInterval, breakerTimeout time.Duration, logger *zap.Logger) (*GeminiGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	settings := gobreaker.Settings{
		Name:     "gemini",
		Interval: breakerInterval,
		Timeout:  breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &GeminiGenerator{
		client:    client,
		modelName: model,
		breaker:   gobreaker.NewCircuitBreaker[string](settings),
		logger:    logger,
	}, nil
}

func (g *GeminiGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	return g.breaker.Execute(func() (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}

		var builder strings.Builder
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part == nil {
					continue
				}
				text := strings.TrimSpace(part.Text)
				if text == "" {
					continue
				}
				if builder.Len() > 0 {
					builder.WriteString("\n")
				}
				builder.WriteString(text)
			}
		}

		output := strings.TrimSpace(builder.String())
		if output == "" {
			return "", errors.New("gemini returned no textual candidates")
		}
		return output, nil
	})
}
