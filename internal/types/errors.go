package types

import "errors"

var (
	// ErrGenerationFailed wraps failures of the generative-text provider (network, API, empty reply).
	ErrGenerationFailed = errors.New("AI generation failed")
	// ErrMalformedResponse is returned when no valid JSON object can be extracted from the model reply.
	ErrMalformedResponse = errors.New("malformed AI response")
	// ErrMissingField is returned when the model JSON lacks a field the plan needs.
	ErrMissingField = errors.New("missing field in AI response")
	// ErrLocationNotFound is returned when the geocoder has no match for a query.
	ErrLocationNotFound = errors.New("location not found")
	// ErrGeocodingUnavailable wraps transport and decoding failures of the geocoding provider.
	ErrGeocodingUnavailable = errors.New("geocoding provider unavailable")
)
