package geocoding

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

func TestGoogleClient_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("address") == "Gedung Sate, Bandung" {
			_, _ = io.WriteString(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":-6.9025,"lng":107.6188}}}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	client, err := NewGoogleClient(srv.Client(), "test-key", srv.URL, nil, discardLogger)
	require.NoError(t, err)

	coords, err := client.Geocode(context.Background(), "Gedung Sate, Bandung")
	require.NoError(t, err)
	assert.InDelta(t, -6.9025, coords.Lat, 1e-9)
	assert.InDelta(t, 107.6188, coords.Lon, 1e-9)

	_, err = client.Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, types.ErrLocationNotFound)
}
