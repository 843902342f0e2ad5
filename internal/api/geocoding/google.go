package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"googlemaps.github.io/maps"

	"github.com/FACorreiaa/go-travel-planner-ai/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-planner-ai/config"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

var _ Geocoder = (*GoogleClient)(nil)

// GoogleClient resolves queries with the Google Geocoding API.
type GoogleClient struct {
	client  *maps.Client
	metrics *metrics.AppMetrics
	logger  *slog.Logger
}

// NewGoogleClient creates a Geocoding API client. baseURL is optional.
func NewGoogleClient(httpClient *http.Client, apiKey, baseURL string, m *metrics.AppMetrics, logger *slog.Logger) (*GoogleClient, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleClient{client: client, metrics: m, logger: logger}, nil
}

func (c *GoogleClient) Geocode(ctx context.Context, query string) (types.Coordinates, error) {
	ctx, span := otel.Tracer("Geocoding").Start(ctx, "Google.Geocode", trace.WithAttributes(
		attribute.String("geocode.provider", config.GeocoderGoogle),
		attribute.String("geocode.query", query),
	))
	defer span.End()

	coords, err := c.geocode(ctx, query)
	c.metrics.RecordGeocode(ctx, config.GeocoderGoogle, outcomeOf(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocoding failed")
		c.logger.DebugContext(ctx, "Google geocoding failed", slog.String("query", query), slog.Any("error", err))
		return types.Coordinates{}, err
	}
	span.SetStatus(codes.Ok, "Location resolved")
	return coords, nil
}

func (c *GoogleClient) geocode(ctx context.Context, query string) (types.Coordinates, error) {
	results, err := c.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return types.Coordinates{}, fmt.Errorf("%w: %q", types.ErrLocationNotFound, query)
		}
		return types.Coordinates{}, fmt.Errorf("%w: %v", types.ErrGeocodingUnavailable, err)
	}
	if len(results) == 0 {
		return types.Coordinates{}, fmt.Errorf("%w: %q", types.ErrLocationNotFound, query)
	}
	loc := results[0].Geometry.Location
	return types.Coordinates{Lat: loc.Lat, Lon: loc.Lng}, nil
}
