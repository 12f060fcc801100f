// Package gemini implements the ai.Completer capability on top of the
// Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/utils"
)

const defaultModel = "gemini-2.5-flash"

// retryBaseDelay is the backoff unit between retry attempts. Overridden in
// tests to keep them fast.
var retryBaseDelay = time.Second

// contentCaller is the slice of the genai client the generator needs.
type contentCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client behind the ai.Completer interface.
type Generator struct {
	models     contentCaller
	model      string
	maxRetries int
	logger     *zap.Logger
}

// New creates a Generator configured for the Gemini API backend. maxRetries
// is the total number of attempts for transient API errors; values below 1
// mean a single attempt, which keeps the attempt-once semantics the engines
// are specified against.
func New(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Generator{
		models:     client.Models,
		model:      model,
		maxRetries: maxRetries,
		logger:     logger.WithCommonFields(log, "gemini", model),
	}, nil
}

// Complete sends the prompt to Gemini and returns the concatenated textual
// candidates. An empty model reply is reported as an error so callers always
// fall through to their documented fallback.
func (g *Generator) Complete(ctx context.Context, prompt string, opts ...ai.Option) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var config *genai.GenerateContentConfig
	if options := ai.BuildOptions(opts...); options.Temperature != nil {
		config = &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(*options.Temperature)),
		}
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
		if err == nil {
			output := flattenResponse(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			return output, nil
		}

		lastErr = err
		if attempt == g.maxRetries || !isTransient(err) {
			break
		}

		g.logger.Debug("retrying gemini call",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if waitErr := utils.WaitFor(ctx, time.Duration(attempt)*retryBaseDelay); waitErr != nil {
			return "", waitErr
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func flattenResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
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

	return strings.TrimSpace(builder.String())
}

// isTransient reports whether the API error is worth retrying: server-side
// failures and rate limiting, nothing else.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code >= 500 || apiErr.Code == 429
}
