package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-travel-planner-ai/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-planner-ai/config"
	generativeAI "github.com/FACorreiaa/go-travel-planner-ai/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/api/geocoding"
	travelPlan "github.com/FACorreiaa/go-travel-planner-ai/internal/api/travel_plan"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *slog.Logger
	Metrics           *metrics.AppMetrics
	AIClient          *generativeAI.AIClient
	Geocoder          geocoding.Geocoder
	TravelPlanService *travelPlan.ServiceImpl
	TravelPlanHandler *travelPlan.HandlerImpl
	GeocodingHandler  *geocoding.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	metrics.InitAppMetrics()
	appMetrics := metrics.Get()

	aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM, &http.Client{}, appMetrics,
		logger.With(slog.String("component", "llm")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}

	geocoder, err := geocoding.NewGeocoder(cfg.Geocoding, appMetrics,
		logger.With(slog.String("component", "geocoder")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize geocoder: %w", err)
	}

	generator := travelPlan.NewGenerator(aiClient, logger)
	resolver := travelPlan.NewResolver(geocoder, logger)
	planService := travelPlan.NewServiceImpl(generator, resolver, logger,
		travelPlan.WithConcurrency(cfg.Geocoding.Concurrency),
		travelPlan.WithFallbackJitter(cfg.Geocoding.FallbackJitter),
		travelPlan.WithMetrics(appMetrics),
	)

	return &Container{
		Config:            cfg,
		Logger:            logger,
		Metrics:           appMetrics,
		AIClient:          aiClient,
		Geocoder:          geocoder,
		TravelPlanService: planService,
		TravelPlanHandler: travelPlan.NewHandlerImpl(planService, logger),
		GeocodingHandler:  geocoding.NewHandlerImpl(geocoder, logger),
	}, nil
}

// RouterConfig returns the handlers the HTTP router mounts.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		TravelPlanHandler: c.TravelPlanHandler,
		GeocodingHandler:  c.GeocodingHandler,
	}
}
