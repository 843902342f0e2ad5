package metrics

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome values recorded on the counters below.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanRequestsTotal          metric.Int64Counter
	PlanDurationSeconds        metric.Float64Histogram
	GenerationDurationSeconds  metric.Float64Histogram
	GeocodeLookupsTotal        metric.Int64Counter
	GeocodeFallbacksTotal      metric.Int64Counter
	PlanDestinationsPerRequest metric.Int64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// NewAppMetrics creates the instruments on the given meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.PlanRequestsTotal, err = meter.Int64Counter(
		"travel_plan_requests_total",
		metric.WithDescription("Total number of travel plan requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("travel_plan_requests_total: %w", err)
	}

	m.PlanDurationSeconds, err = meter.Float64Histogram(
		"travel_plan_duration_seconds",
		metric.WithDescription("End-to-end duration of travel plan creation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("travel_plan_duration_seconds: %w", err)
	}

	m.GenerationDurationSeconds, err = meter.Float64Histogram(
		"llm_generation_duration_seconds",
		metric.WithDescription("Duration of generative-text calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_generation_duration_seconds: %w", err)
	}

	m.GeocodeLookupsTotal, err = meter.Int64Counter(
		"geocode_lookups_total",
		metric.WithDescription("Total number of geocoding lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("geocode_lookups_total: %w", err)
	}

	m.GeocodeFallbacksTotal, err = meter.Int64Counter(
		"geocode_fallbacks_total",
		metric.WithDescription("Destinations placed on jittered city coordinates"),
		metric.WithUnit("{destination}"),
	)
	if err != nil {
		return nil, fmt.Errorf("geocode_fallbacks_total: %w", err)
	}

	m.PlanDestinationsPerRequest, err = meter.Int64Histogram(
		"travel_plan_destinations",
		metric.WithDescription("Number of destinations per generated plan"),
		metric.WithUnit("{destination}"),
	)
	if err != nil {
		return nil, fmt.Errorf("travel_plan_destinations: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE,
// using the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := NewAppMetrics(otel.GetMeterProvider().Meter("TravelPlannerAI"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// The Record methods accept a nil receiver, so components built without
// metrics (mostly tests) can skip instrumentation.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// RecordGeocode counts one geocoding lookup.
func (m *AppMetrics) RecordGeocode(ctx context.Context, provider, outcome string) {
	if m == nil {
		return
	}
	m.GeocodeLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	))
}

// RecordPlan counts one plan request and its latency.
func (m *AppMetrics) RecordPlan(ctx context.Context, outcome string, seconds float64, destinations int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.PlanRequestsTotal.Add(ctx, 1, attrs)
	m.PlanDurationSeconds.Record(ctx, seconds, attrs)
	if outcome == OutcomeSuccess {
		m.PlanDestinationsPerRequest.Record(ctx, int64(destinations))
	}
}

// RecordGeneration records the latency of one generative-text call.
func (m *AppMetrics) RecordGeneration(ctx context.Context, provider, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.GenerationDurationSeconds.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	))
}

// RecordFallback counts a destination placed on the city-level fallback.
func (m *AppMetrics) RecordFallback(ctx context.Context) {
	if m == nil {
		return
	}
	m.GeocodeFallbacksTotal.Add(ctx, 1)
}
