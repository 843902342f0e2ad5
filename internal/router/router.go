package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/api"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/api/geocoding"
	travelPlan "github.com/FACorreiaa/go-travel-planner-ai/internal/api/travel_plan"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TravelPlanHandler *travelPlan.HandlerImpl
	GeocodingHandler  *geocoding.HandlerImpl
}

type apiInfo struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

var rootInfo = apiInfo{
	Message: "Travel Planner AI API",
	Endpoints: map[string]string{
		"/api/plan":    "POST - Generate travel plan",
		"/api/geocode": "GET - Geocode location",
	},
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) is applied in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSONResponse(w, r, http.StatusOK, rootInfo)
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/plan", cfg.TravelPlanHandler.CreatePlan)
		r.Get("/geocode", cfg.GeocodingHandler.Geocode)
	})

	return r
}
