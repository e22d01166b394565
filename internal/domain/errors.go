package domain

import "errors"

var (
	// ErrMalformedAIResponse is returned when the generative service replies
	// with text that does not parse against the requested schema
	ErrMalformedAIResponse = errors.New("malformed AI response")

	// ErrPredictionFailure is returned when the prediction backend request fails
	ErrPredictionFailure = errors.New("prediction backend request failed")

	// ErrDocumentUnavailable is returned when the recommendation document
	// cannot be fetched or decoded
	ErrDocumentUnavailable = errors.New("recommendation document unavailable")

	// ErrGeocodeFailure is returned when reverse geocoding fails
	ErrGeocodeFailure = errors.New("reverse geocoding failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
