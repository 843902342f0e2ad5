package travelPlan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/api/geocoding"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

// LocationResolver places a generated destination on the map.
type LocationResolver interface {
	Resolve(ctx context.Context, name, city string) (types.Resolution, error)
}

var _ LocationResolver = (*Resolver)(nil)

// Resolver tries "<name>, <city>" first and falls back to the city itself.
// Fallback results are returned with Exact=false; jitter is left to the caller.
type Resolver struct {
	geocoder geocoding.Geocoder
	logger   *slog.Logger
}

func NewResolver(geocoder geocoding.Geocoder, logger *slog.Logger) *Resolver {
	return &Resolver{geocoder: geocoder, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, name, city string) (types.Resolution, error) {
	query := fmt.Sprintf("%s, %s", name, city)
	coords, err := r.geocoder.Geocode(ctx, query)
	if err == nil {
		return types.Resolution{Coordinates: coords, Exact: true}, nil
	}
	// A cancelled request must not fall through to another lookup.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.Resolution{}, ctxErr
	}
	r.logger.DebugContext(ctx, "Destination not geocoded, falling back to city",
		slog.String("query", query),
		slog.Any("error", err))

	coords, err = r.geocoder.Geocode(ctx, city)
	if err != nil {
		return types.Resolution{}, fmt.Errorf("%w: city %q could not be geocoded: %v", types.ErrLocationNotFound, city, err)
	}
	return types.Resolution{Coordinates: coords, Exact: false}, nil
}
