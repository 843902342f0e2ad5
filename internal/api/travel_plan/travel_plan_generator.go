package travelPlan

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

// TextGenerator is the subset of generativeAI.AIClient the generator needs.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// PlanGenerator turns preferences into a parsed model itinerary.
type PlanGenerator interface {
	Generate(ctx context.Context, prefs types.TravelPreferences) (*types.GeneratedPlan, error)
}

var _ PlanGenerator = (*Generator)(nil)

type Generator struct {
	ai     TextGenerator
	logger *slog.Logger
}

func NewGenerator(ai TextGenerator, logger *slog.Logger) *Generator {
	return &Generator{ai: ai, logger: logger}
}

// Generate makes exactly one model call.
func (g *Generator) Generate(ctx context.Context, prefs types.TravelPreferences) (*types.GeneratedPlan, error) {
	ctx, span := otel.Tracer("TravelPlanGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("travel.city", prefs.City),
		attribute.Int("travel.duration_days", prefs.Duration),
		attribute.String("travel.budget", prefs.Budget),
	))
	defer span.End()

	prompt := getPlanPrompt(prefs)
	reply, err := g.ai.GenerateJSON(ctx, prompt, planResponseSchema)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return nil, err
	}

	plan, err := parseGeneratedPlan(reply)
	if err != nil {
		g.logger.WarnContext(ctx, "Could not parse model reply",
			slog.Any("error", err),
			slog.Int("reply_length", len(reply)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Parse failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("travel.generated_destinations", len(plan.Destinations)))
	span.SetStatus(codes.Ok, "Plan generated")
	return plan, nil
}
