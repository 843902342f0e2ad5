package types

// Budget tiers accepted in TravelPreferences.Budget.
const (
	BudgetLow    = "rendah"
	BudgetMedium = "menengah"
	BudgetHigh   = "tinggi"
)

// Destination categories the model is asked to choose from.
const (
	CategoryCulinary      = "culinary"
	CategoryHistorical    = "historical"
	CategoryNature        = "nature"
	CategoryShopping      = "shopping"
	CategoryReligious     = "religious"
	CategoryEntertainment = "entertainment"
)

// TravelPreferences is the body of POST /api/plan.
type TravelPreferences struct {
	City          string   `json:"city" validate:"required" example:"Bandung"`                                                 // City to plan the trip in.
	Interests     []string `json:"interests" validate:"required,dive,required" example:"kuliner,alam"`                           // Ordered interest tags, e.g. "sejarah", "kuliner", "alam".
	Duration      int      `json:"duration" validate:"gt=0" example:"2"`                                                         // Trip length in days.
	Budget        string   `json:"budget" validate:"required,oneof=rendah menengah tinggi low medium high" example:"menengah"` // Budget tier.
	StartLocation *string  `json:"start_location,omitempty" example:"Stasiun Bandung"`                                           // Optional starting point.
}

// Coordinates is a WGS84 point in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Destination is one stop of a TravelPlan.
type Destination struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Category          string  `json:"category"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	EstimatedDuration string  `json:"estimated_duration"`
	Tips              string  `json:"tips"`
}

// TravelPlan is the response of POST /api/plan. Destinations are in route order.
type TravelPlan struct {
	Destinations        []Destination `json:"destinations"`
	RouteSummary        string        `json:"route_summary"`
	TotalDistance       string        `json:"total_distance"`
	EstimatedTime       string        `json:"estimated_time"`
	BudgetConsideration string        `json:"budget_consideration"`
	StartLocation       string        `json:"start_location"`
}

// GeneratedDestination is a destination as returned by the model, before geocoding.
// Fields are pointers so a missing key can be told apart from an empty value.
type GeneratedDestination struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Category          *string `json:"category"`
	EstimatedDuration *string `json:"estimated_duration"`
	Tips              *string `json:"tips"`
}

// GeneratedPlan is the JSON payload extracted from the model reply.
type GeneratedPlan struct {
	Destinations        []GeneratedDestination `json:"destinations"`
	RouteSummary        *string                `json:"route_summary,omitempty"`
	EstimatedTime       *string                `json:"estimated_time,omitempty"`
	TotalDistance       *string                `json:"total_distance,omitempty"`
	BudgetConsideration *string                `json:"budget_consideration,omitempty"`
	StartLocation       *string                `json:"start_location,omitempty"`
}

// Resolution is the outcome of resolving a destination to coordinates.
// Exact is false when the coordinates come from the city-level fallback.
type Resolution struct {
	Coordinates Coordinates
	Exact       bool
}
