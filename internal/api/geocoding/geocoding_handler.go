package geocoding

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/api"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

type geocodeQuery struct {
	Location string `json:"location" validate:"required"`
}

type HandlerImpl struct {
	geocoder Geocoder
	logger   *slog.Logger
}

func NewHandlerImpl(geocoder Geocoder, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Geocode handles GET /api/geocode?location=<text>.
func (h *HandlerImpl) Geocode(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GeocodingHandler").Start(r.Context(), "Geocode", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/geocode"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Geocode"))

	q := geocodeQuery{Location: strings.TrimSpace(r.URL.Query().Get("location"))}
	if err := api.ValidateStruct(q); err != nil {
		span.SetStatus(codes.Error, "Invalid query")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.String("geocode.location", q.Location))

	coords, err := h.geocoder.Geocode(ctx, q.Location)
	switch {
	case errors.Is(err, types.ErrLocationNotFound):
		l.InfoContext(ctx, "Location not found", slog.String("location", q.Location))
		span.SetStatus(codes.Error, "Location not found")
		api.ErrorResponse(w, r, http.StatusNotFound, "Location not found")
		return
	case err != nil:
		l.ErrorContext(ctx, "Geocoding failed", slog.String("location", q.Location), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocoding failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	span.SetStatus(codes.Ok, "Location geocoded")
	api.WriteJSONResponse(w, r, http.StatusOK, coords)
}
