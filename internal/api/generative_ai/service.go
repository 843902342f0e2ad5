package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-planner-ai/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-planner-ai/config"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

// AIClient sends single-turn prompts to the configured provider: any endpoint speaking the
// Anthropic Messages API (DeepSeek by default) or Gemini.
type AIClient struct {
	provider    string
	model       string
	maxTokens   int
	temperature float64

	anthropic *anthropic.Client
	gemini    *genai.Client

	metrics *metrics.AppMetrics
	logger  *slog.Logger
}

// NewAIClient builds the client for cfg.Provider. httpClient may be nil.
func NewAIClient(ctx context.Context, cfg config.LLMConfig, httpClient *http.Client, m *metrics.AppMetrics, logger *slog.Logger) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient", trace.WithAttributes(
		attribute.String("llm.provider", cfg.Provider),
		attribute.String("llm.model", cfg.Model),
	))
	defer span.End()

	ai := &AIClient{
		provider:    cfg.Provider,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		metrics:     m,
		logger:      logger,
	}

	switch cfg.Provider {
	case config.LLMProviderAnthropic:
		opts := []option.RequestOption{
			option.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
		}
		if httpClient != nil {
			opts = append(opts, option.WithHTTPClient(httpClient))
		}
		client := anthropic.NewClient(opts...)
		ai.anthropic = &client

	case config.LLMProviderGemini:
		cc := &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		}
		if cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to create Gemini client")
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		ai.gemini = client

	default:
		err := fmt.Errorf("unsupported llm provider %q", cfg.Provider)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unsupported provider")
		return nil, err
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return ai, nil
}

// Provider returns the configured provider name.
func (ai *AIClient) Provider() string { return ai.provider }

// GenerateText sends prompt as a single user message and returns the reply text.
func (ai *AIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return ai.GenerateJSON(ctx, prompt, nil)
}

// GenerateJSON is GenerateText for prompts that expect a JSON reply. Providers with
// constrained decoding (Gemini) are asked for application/json matching schema; the
// others rely on the prompt alone.
func (ai *AIClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("llm.provider", ai.provider),
		attribute.String("llm.model", ai.model),
		attribute.Bool("llm.structured_output", schema != nil && ai.gemini != nil),
	))
	defer span.End()

	start := time.Now()
	var (
		text string
		err  error
	)
	if ai.gemini != nil {
		text, err = ai.generateGemini(ctx, prompt, schema)
	} else {
		text, err = ai.generateAnthropic(ctx, prompt)
	}
	elapsed := time.Since(start)

	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: empty response from %s", types.ErrGenerationFailed, ai.provider)
	}
	if err != nil {
		ai.metrics.RecordGeneration(ctx, ai.provider, metrics.OutcomeError, elapsed.Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		ai.logger.ErrorContext(ctx, "LLM call failed",
			slog.String("provider", ai.provider),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err))
		return "", err
	}

	ai.metrics.RecordGeneration(ctx, ai.provider, metrics.OutcomeSuccess, elapsed.Seconds())
	ai.logger.DebugContext(ctx, "LLM call completed",
		slog.String("provider", ai.provider),
		slog.Duration("elapsed", elapsed),
		slog.Int("response_length", len(text)))
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return text, nil
}

func (ai *AIClient) generateAnthropic(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(ai.model),
		MaxTokens: int64(ai.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if ai.temperature > 0 {
		params.Temperature = anthropic.Float(ai.temperature)
	}

	resp, err := ai.anthropic.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (ai *AIClient) generateGemini(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(ai.maxTokens),
	}
	if ai.temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(ai.temperature))
	}
	if schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schema
	}

	result, err := ai.gemini.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}
	return result.Text(), nil
}
