package domain

import (
	"context"
	"time"
)

// GenerativeClient defines the calls this module makes to the generative
// AI service. Schema-constrained calls return the raw JSON text; parsing
// into typed results belongs to the usecase layer.
type GenerativeClient interface {
	// ClassifyDisease analyzes an image against the disease-verdict schema.
	ClassifyDisease(ctx context.Context, image []byte, mimeType string) (string, error)

	// FindExperts answers a location prompt against the experts array schema.
	FindExperts(ctx context.Context, prompt string) (string, error)

	// GenerateText answers a free-text prompt verbatim.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// PredictionClient defines the interface to the custom YOLO prediction backend.
type PredictionClient interface {
	Predict(ctx context.Context, filename string, image []byte) (*PredictionResult, error)
}

// DocumentSource fetches the centrally served recommendation document.
type DocumentSource interface {
	FetchDocument(ctx context.Context) (*RecommendationDocument, error)
}

// OverlayStore reads the locally persisted recommendation overlay.
// A missing or malformed overlay is reported as an empty document, not an
// error; the overlay is read-only from this module's perspective.
type OverlayStore interface {
	ReadOverlay(ctx context.Context) (*RecommendationDocument, error)
}

// Geocoder resolves coordinates to a display name.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
