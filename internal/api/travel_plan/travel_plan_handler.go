package travelPlan

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/api"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// CreatePlan handles POST /api/plan.
func (h *HandlerImpl) CreatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelPlanHandler").Start(r.Context(), "CreatePlan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreatePlan"))
	l.DebugContext(ctx, "Create plan handler invoked")

	var prefs types.TravelPreferences
	if err := api.DecodeJSONBody(w, r, &prefs); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	prefs.City = strings.TrimSpace(prefs.City)

	if err := api.ValidateStruct(prefs); err != nil {
		l.WarnContext(ctx, "Invalid travel preferences", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid travel preferences")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.service.CreatePlan(ctx, prefs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Plan creation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	span.SetStatus(codes.Ok, "Plan created")
	api.WriteJSONResponse(w, r, http.StatusOK, plan)
}
