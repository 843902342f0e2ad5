package travelPlan

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-travel-planner-ai/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

const (
	defaultRouteSummary        = "an optimal route has been created"
	defaultBudgetConsideration = "budget consideration unavailable"
	defaultTotalDistance       = "to be calculated automatically"
	defaultEstimatedTimeFormat = "%d days"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for travel plans.
type Service interface {
	CreatePlan(ctx context.Context, prefs types.TravelPreferences) (*types.TravelPlan, error)
}

type ServiceImpl struct {
	generator   PlanGenerator
	resolver    LocationResolver
	concurrency int
	jitter      float64
	uniform     func() float64
	metrics     *metrics.AppMetrics
	logger      *slog.Logger
}

type Option func(*ServiceImpl)

// WithConcurrency bounds the number of in-flight geocoding lookups per plan.
func WithConcurrency(n int) Option {
	return func(s *ServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithFallbackJitter sets the maximum offset in degrees added to fallback coordinates.
func WithFallbackJitter(degrees float64) Option {
	return func(s *ServiceImpl) {
		if degrees >= 0 {
			s.jitter = degrees
		}
	}
}

// WithRandomSource replaces the uniform [0,1) source used for jitter. It must be safe
// for concurrent use.
func WithRandomSource(uniform func() float64) Option {
	return func(s *ServiceImpl) {
		if uniform != nil {
			s.uniform = uniform
		}
	}
}

func WithMetrics(m *metrics.AppMetrics) Option {
	return func(s *ServiceImpl) { s.metrics = m }
}

func NewServiceImpl(generator PlanGenerator, resolver LocationResolver, logger *slog.Logger, opts ...Option) *ServiceImpl {
	s := &ServiceImpl{
		generator:   generator,
		resolver:    resolver,
		concurrency: 1,
		jitter:      0.01,
		uniform:     rand.Float64,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePlan generates an itinerary and geocodes every destination. It either returns a
// complete plan or an error, never a partial destination list.
func (s *ServiceImpl) CreatePlan(ctx context.Context, prefs types.TravelPreferences) (*types.TravelPlan, error) {
	planID := uuid.New()
	ctx, span := otel.Tracer("TravelPlanService").Start(ctx, "CreatePlan", trace.WithAttributes(
		attribute.String("plan.id", planID.String()),
		attribute.String("travel.city", prefs.City),
		attribute.StringSlice("travel.interests", prefs.Interests),
		attribute.Int("travel.duration_days", prefs.Duration),
	))
	defer span.End()

	l := s.logger.With(slog.String("plan_id", planID.String()), slog.String("city", prefs.City))
	l.InfoContext(ctx, "Creating travel plan",
		slog.Any("interests", prefs.Interests),
		slog.Int("duration", prefs.Duration),
		slog.String("budget", prefs.Budget))

	start := time.Now()
	plan, err := s.createPlan(ctx, l, prefs)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordPlan(ctx, metrics.OutcomeError, elapsed.Seconds(), 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Plan creation failed")
		l.ErrorContext(ctx, "Travel plan failed", slog.Any("error", err), slog.Duration("elapsed", elapsed))
		return nil, err
	}

	s.metrics.RecordPlan(ctx, metrics.OutcomeSuccess, elapsed.Seconds(), len(plan.Destinations))
	span.SetAttributes(attribute.Int("plan.destinations", len(plan.Destinations)))
	span.SetStatus(codes.Ok, "Plan created")
	l.InfoContext(ctx, "Travel plan created",
		slog.Int("destinations", len(plan.Destinations)),
		slog.Duration("elapsed", elapsed))
	return plan, nil
}

func (s *ServiceImpl) createPlan(ctx context.Context, l *slog.Logger, prefs types.TravelPreferences) (*types.TravelPlan, error) {
	generated, err := s.generator.Generate(ctx, prefs)
	if err != nil {
		return nil, err
	}

	resolutions, err := s.resolveAll(ctx, generated.Destinations, prefs.City)
	if err != nil {
		return nil, err
	}

	destinations := make([]types.Destination, len(generated.Destinations))
	fallbacks := 0
	for i, d := range generated.Destinations {
		coords := resolutions[i].Coordinates
		if !resolutions[i].Exact {
			coords = s.jittered(coords)
			fallbacks++
			s.metrics.RecordFallback(ctx)
		}
		destinations[i] = types.Destination{
			Name:              *d.Name,
			Description:       *d.Description,
			Category:          *d.Category,
			Lat:               coords.Lat,
			Lon:               coords.Lon,
			EstimatedDuration: *d.EstimatedDuration,
			Tips:              *d.Tips,
		}
	}
	if fallbacks > 0 {
		l.InfoContext(ctx, "Some destinations placed on city coordinates", slog.Int("fallbacks", fallbacks))
	}

	return &types.TravelPlan{
		Destinations:        destinations,
		RouteSummary:        valueOr(generated.RouteSummary, defaultRouteSummary),
		TotalDistance:       valueOr(generated.TotalDistance, defaultTotalDistance),
		EstimatedTime:       valueOr(generated.EstimatedTime, fmt.Sprintf(defaultEstimatedTimeFormat, prefs.Duration)),
		BudgetConsideration: valueOr(generated.BudgetConsideration, defaultBudgetConsideration),
		StartLocation:       valueOr(generated.StartLocation, defaultStartLocation(prefs)),
	}, nil
}

// resolveAll geocodes every destination with bounded concurrency. Results are written by
// index so they keep the generator's order.
func (s *ServiceImpl) resolveAll(ctx context.Context, dests []types.GeneratedDestination, city string) ([]types.Resolution, error) {
	out := make([]types.Resolution, len(dests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, d := range dests {
		g.Go(func() error {
			res, err := s.resolver.Resolve(gctx, *d.Name, city)
			if err != nil {
				return fmt.Errorf("resolving %q: %w", *d.Name, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ServiceImpl) jittered(c types.Coordinates) types.Coordinates {
	return types.Coordinates{
		Lat: c.Lat + (2*s.uniform()-1)*s.jitter,
		Lon: c.Lon + (2*s.uniform()-1)*s.jitter,
	}
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func defaultStartLocation(prefs types.TravelPreferences) string {
	if prefs.StartLocation != nil && *prefs.StartLocation != "" {
		return *prefs.StartLocation
	}
	return prefs.City
}
