package travelPlan

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

type MockPlanGenerator struct {
	mock.Mock
}

func (m *MockPlanGenerator) Generate(ctx context.Context, prefs types.TravelPreferences) (*types.GeneratedPlan, error) {
	args := m.Called(ctx, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeneratedPlan), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (types.Coordinates, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(types.Coordinates), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) CreatePlan(ctx context.Context, prefs types.TravelPreferences) (*types.TravelPlan, error) {
	args := m.Called(ctx, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TravelPlan), args.Error(1)
}

func strPtr(s string) *string { return &s }

func generatedDestination(name string) types.GeneratedDestination {
	return types.GeneratedDestination{
		Name:              strPtr(name),
		Description:       strPtr("Deskripsi " + name),
		Category:          strPtr("sejarah"),
		EstimatedDuration: strPtr("2 jam"),
		Tips:              strPtr("Datang pagi"),
	}
}
