package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-travel-planner-ai/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-planner-ai/config"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

// Geocoder turns a free-text place description into coordinates.
// Implementations return types.ErrLocationNotFound when the provider has no
// match and wrap types.ErrGeocodingUnavailable for every other failure.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (types.Coordinates, error)
}

// NewGeocoder builds the provider selected in cfg.
func NewGeocoder(cfg config.GeocodingConfig, m *metrics.AppMetrics, logger *slog.Logger) (Geocoder, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case config.GeocoderNominatim, "":
		return NewNominatimClient(httpClient, cfg.BaseURL, cfg.UserAgent, m, logger), nil
	case config.GeocoderGoogle:
		return NewGoogleClient(httpClient, cfg.APIKey, cfg.BaseURL, m, logger)
	default:
		return nil, fmt.Errorf("unsupported geocoding provider %q", cfg.Provider)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, types.ErrLocationNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
