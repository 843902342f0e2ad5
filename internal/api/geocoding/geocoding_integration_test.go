//go:build integration

package geocoding

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Monas_Integration(t *testing.T) {
	client := NewNominatimClient(&http.Client{Timeout: 15 * time.Second},
		"https://nominatim.openstreetmap.org", "TravelPlannerAI/1.0", nil, discardLogger)

	coords, err := client.Geocode(context.Background(), "Monas, Jakarta")
	require.NoError(t, err)
	assert.InDelta(t, -6.1754, coords.Lat, 0.01)
	assert.InDelta(t, 106.8272, coords.Lon, 0.01)
}
