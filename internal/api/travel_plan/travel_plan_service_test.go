package travelPlan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

var bandungPrefs = types.TravelPreferences{
	City:      "Bandung",
	Interests: []string{"kuliner"},
	Duration:  2,
	Budget:    types.BudgetMedium,
}

func newTestService(gen PlanGenerator, geocoder *MockGeocoder, opts ...Option) *ServiceImpl {
	return NewServiceImpl(gen, NewResolver(geocoder, discardLogger), discardLogger, opts...)
}

func TestServiceImpl_CreatePlan_PreservesOrder(t *testing.T) {
	names := []string{"Gedung Sate", "Braga", "Kawah Putih", "Tangkuban Perahu", "Saung Udjo", "Pasar Baru"}
	generated := &types.GeneratedPlan{RouteSummary: strPtr("Utara ke selatan")}
	for _, n := range names {
		generated.Destinations = append(generated.Destinations, generatedDestination(n))
	}

	gen := new(MockPlanGenerator)
	gen.On("Generate", mock.Anything, bandungPrefs).Return(generated, nil).Once()

	geocoder := new(MockGeocoder)
	for i, n := range names {
		// Earlier destinations answer later so completion order differs from input order.
		delay := time.Duration(len(names)-i) * 5 * time.Millisecond
		coords := types.Coordinates{Lat: float64(i), Lon: float64(i) + 100}
		geocoder.On("Geocode", mock.Anything, n+", Bandung").
			After(delay).
			Return(coords, nil).Once()
	}

	svc := newTestService(gen, geocoder, WithConcurrency(4))
	plan, err := svc.CreatePlan(context.Background(), bandungPrefs)
	require.NoError(t, err)

	require.Len(t, plan.Destinations, len(names))
	for i, d := range plan.Destinations {
		assert.Equal(t, names[i], d.Name)
		assert.Equal(t, float64(i), d.Lat, "exact coordinates are not jittered")
		assert.Equal(t, float64(i)+100, d.Lon)
		assert.Equal(t, "Deskripsi "+names[i], d.Description)
		assert.Equal(t, "sejarah", d.Category)
		assert.Equal(t, "2 jam", d.EstimatedDuration)
		assert.Equal(t, "Datang pagi", d.Tips)
	}
	assert.Equal(t, "Utara ke selatan", plan.RouteSummary)
	gen.AssertExpectations(t)
	geocoder.AssertExpectations(t)
}

func TestServiceImpl_CreatePlan_FallbackJitter(t *testing.T) {
	generated := &types.GeneratedPlan{Destinations: []types.GeneratedDestination{
		generatedDestination("Warung A"),
		generatedDestination("Warung B"),
		generatedDestination("Gedung Sate"),
	}}
	gen := new(MockPlanGenerator)
	gen.On("Generate", mock.Anything, bandungPrefs).Return(generated, nil).Once()

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, "Warung A, Bandung").Return(types.Coordinates{}, notFound).Once()
	geocoder.On("Geocode", mock.Anything, "Warung B, Bandung").Return(types.Coordinates{}, notFound).Once()
	geocoder.On("Geocode", mock.Anything, "Gedung Sate, Bandung").Return(gedungSate, nil).Once()
	geocoder.On("Geocode", mock.Anything, "Bandung").Return(bandung, nil).Twice()

	plan, err := newTestService(gen, geocoder).CreatePlan(context.Background(), bandungPrefs)
	require.NoError(t, err)
	require.Len(t, plan.Destinations, 3)

	a, b := plan.Destinations[0], plan.Destinations[1]
	for _, d := range []types.Destination{a, b} {
		assert.LessOrEqual(t, math.Abs(d.Lat-bandung.Lat), 0.01)
		assert.LessOrEqual(t, math.Abs(d.Lon-bandung.Lon), 0.01)
	}
	assert.False(t, a.Lat == b.Lat && a.Lon == b.Lon, "fallback destinations must not share a point")
	assert.Equal(t, gedungSate.Lat, plan.Destinations[2].Lat)
	assert.Equal(t, gedungSate.Lon, plan.Destinations[2].Lon)
	geocoder.AssertExpectations(t)
}

func TestServiceImpl_CreatePlan_JitterSource(t *testing.T) {
	generated := &types.GeneratedPlan{Destinations: []types.GeneratedDestination{generatedDestination("Warung A")}}
	gen := new(MockPlanGenerator)
	gen.On("Generate", mock.Anything, bandungPrefs).Return(generated, nil).Once()

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, "Warung A, Bandung").Return(types.Coordinates{}, notFound).Once()
	geocoder.On("Geocode", mock.Anything, "Bandung").Return(bandung, nil).Once()

	// First draw is used for latitude, second for longitude.
	var calls atomic.Int32
	source := func() float64 {
		if calls.Add(1) == 1 {
			return 1.0
		}
		return 0.0
	}

	svc := newTestService(gen, geocoder, WithFallbackJitter(0.05), WithRandomSource(source))
	plan, err := svc.CreatePlan(context.Background(), bandungPrefs)
	require.NoError(t, err)
	assert.InDelta(t, bandung.Lat+0.05, plan.Destinations[0].Lat, 1e-9)
	assert.InDelta(t, bandung.Lon-0.05, plan.Destinations[0].Lon, 1e-9)
}

func TestServiceImpl_CreatePlan_Defaults(t *testing.T) {
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, "Gedung Sate, Bandung").Return(gedungSate, nil)

	t.Run("absent fields get fixed defaults", func(t *testing.T) {
		gen := new(MockPlanGenerator)
		gen.On("Generate", mock.Anything, bandungPrefs).Return(&types.GeneratedPlan{
			Destinations: []types.GeneratedDestination{generatedDestination("Gedung Sate")},
		}, nil).Once()

		plan, err := newTestService(gen, geocoder).CreatePlan(context.Background(), bandungPrefs)
		require.NoError(t, err)
		assert.Equal(t, "to be calculated automatically", plan.TotalDistance)
		assert.Equal(t, "an optimal route has been created", plan.RouteSummary)
		assert.Equal(t, "budget consideration unavailable", plan.BudgetConsideration)
		assert.Equal(t, "2 days", plan.EstimatedTime)
		assert.Equal(t, "Bandung", plan.StartLocation)
	})

	t.Run("user start location is the fallback start", func(t *testing.T) {
		prefs := bandungPrefs
		prefs.StartLocation = strPtr("Stasiun Bandung")
		gen := new(MockPlanGenerator)
		gen.On("Generate", mock.Anything, prefs).Return(&types.GeneratedPlan{
			Destinations: []types.GeneratedDestination{generatedDestination("Gedung Sate")},
		}, nil).Once()

		plan, err := newTestService(gen, geocoder).CreatePlan(context.Background(), prefs)
		require.NoError(t, err)
		assert.Equal(t, "Stasiun Bandung", plan.StartLocation)
	})

	t.Run("present fields are kept even when empty", func(t *testing.T) {
		gen := new(MockPlanGenerator)
		gen.On("Generate", mock.Anything, bandungPrefs).Return(&types.GeneratedPlan{
			Destinations:  []types.GeneratedDestination{generatedDestination("Gedung Sate")},
			TotalDistance: strPtr("25 km"),
			EstimatedTime: strPtr(""),
			StartLocation: strPtr("Alun-Alun Bandung"),
		}, nil).Once()

		plan, err := newTestService(gen, geocoder).CreatePlan(context.Background(), bandungPrefs)
		require.NoError(t, err)
		assert.Equal(t, "25 km", plan.TotalDistance)
		assert.Equal(t, "", plan.EstimatedTime)
		assert.Equal(t, "Alun-Alun Bandung", plan.StartLocation)
	})
}

func TestServiceImpl_CreatePlan_Failures(t *testing.T) {
	t.Run("generator failure returns no plan", func(t *testing.T) {
		gen := new(MockPlanGenerator)
		gen.On("Generate", mock.Anything, bandungPrefs).
			Return(nil, fmt.Errorf("%w: no JSON object in reply", types.ErrMalformedResponse)).Once()
		geocoder := new(MockGeocoder)

		plan, err := newTestService(gen, geocoder).CreatePlan(context.Background(), bandungPrefs)
		assert.Nil(t, plan)
		assert.ErrorIs(t, err, types.ErrMalformedResponse)
		geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})

	t.Run("unresolvable city fails the whole plan", func(t *testing.T) {
		gen := new(MockPlanGenerator)
		gen.On("Generate", mock.Anything, bandungPrefs).Return(&types.GeneratedPlan{
			Destinations: []types.GeneratedDestination{generatedDestination("Gedung Sate"), generatedDestination("Warung A")},
		}, nil).Once()
		geocoder := new(MockGeocoder)
		geocoder.On("Geocode", mock.Anything, "Gedung Sate, Bandung").Return(gedungSate, nil).Maybe()
		geocoder.On("Geocode", mock.Anything, "Warung A, Bandung").Return(types.Coordinates{}, notFound)
		geocoder.On("Geocode", mock.Anything, "Bandung").Return(types.Coordinates{}, errors.New("boom"))

		plan, err := newTestService(gen, geocoder, WithConcurrency(2)).CreatePlan(context.Background(), bandungPrefs)
		assert.Nil(t, plan)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrLocationNotFound)
		assert.Contains(t, err.Error(), "Warung A")
	})
}

func TestNewServiceImpl_Options(t *testing.T) {
	svc := NewServiceImpl(nil, nil, discardLogger, WithConcurrency(0), WithFallbackJitter(-1), WithRandomSource(nil))
	assert.Equal(t, 1, svc.concurrency, "non-positive concurrency is ignored")
	assert.InDelta(t, 0.01, svc.jitter, 1e-12)
	assert.NotNil(t, svc.uniform)
}
