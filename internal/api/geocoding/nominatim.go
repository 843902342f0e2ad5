package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-planner-ai/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-planner-ai/config"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

var _ Geocoder = (*NominatimClient)(nil)

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimClient queries an OpenStreetMap Nominatim /search endpoint.
type NominatimClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *metrics.AppMetrics
	logger     *slog.Logger
}

// NewNominatimClient returns a client for baseURL. Nominatim rejects requests without a
// User-Agent, so userAgent should always be set.
func NewNominatimClient(httpClient *http.Client, baseURL, userAgent string, m *metrics.AppMetrics, logger *slog.Logger) *NominatimClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NominatimClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		metrics:    m,
		logger:     logger,
	}
}

func (c *NominatimClient) Geocode(ctx context.Context, query string) (types.Coordinates, error) {
	ctx, span := otel.Tracer("Geocoding").Start(ctx, "Nominatim.Geocode", trace.WithAttributes(
		attribute.String("geocode.provider", config.GeocoderNominatim),
		attribute.String("geocode.query", query),
	))
	defer span.End()

	coords, err := c.search(ctx, query)
	c.metrics.RecordGeocode(ctx, config.GeocoderNominatim, outcomeOf(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocoding failed")
		c.logger.DebugContext(ctx, "Nominatim lookup failed", slog.String("query", query), slog.Any("error", err))
		return types.Coordinates{}, err
	}

	span.SetAttributes(attribute.Float64("geocode.lat", coords.Lat), attribute.Float64("geocode.lon", coords.Lon))
	span.SetStatus(codes.Ok, "Location resolved")
	return coords, nil
}

func (c *NominatimClient) search(ctx context.Context, query string) (types.Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("%w: building request: %v", types.ErrGeocodingUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("%w: %v", types.ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Coordinates{}, fmt.Errorf("%w: nominatim returned status %d", types.ErrGeocodingUnavailable, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return types.Coordinates{}, fmt.Errorf("%w: decoding response: %v", types.ErrGeocodingUnavailable, err)
	}
	if len(places) == 0 {
		return types.Coordinates{}, fmt.Errorf("%w: %q", types.ErrLocationNotFound, query)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("%w: invalid latitude %q", types.ErrGeocodingUnavailable, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("%w: invalid longitude %q", types.ErrGeocodingUnavailable, places[0].Lon)
	}
	return types.Coordinates{Lat: lat, Lon: lon}, nil
}
