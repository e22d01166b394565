package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("KALPAVRUKSHA_SERVER_PORT")
		os.Unsetenv("KALPAVRUKSHA_SERVER_ENVIRONMENT")
		os.Unsetenv("KALPAVRUKSHA_GENAI_API_KEY")
		os.Unsetenv("KALPAVRUKSHA_GENAI_MODEL")
		os.Unsetenv("KALPAVRUKSHA_PREDICTION_BASE_URL")
		os.Unsetenv("KALPAVRUKSHA_DOCUMENT_BASE_URL")
		os.Unsetenv("KALPAVRUKSHA_OVERLAY_PATH")
		os.Unsetenv("KALPAVRUKSHA_GEOCODE_BASE_URL")
		os.Unsetenv("KALPAVRUKSHA_CACHE_TTL")
		os.Unsetenv("KALPAVRUKSHA_RATELIMIT_PER_IP")
		os.Unsetenv("KALPAVRUKSHA_RATELIMIT_GENAI")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.GenAI.Model != "gemini-1.5-flash" {
			t.Errorf("GenAI.Model = %s, want gemini-1.5-flash", cfg.GenAI.Model)
		}
		if cfg.Prediction.BaseURL != "http://localhost:5000" {
			t.Errorf("Prediction.BaseURL = %s, want http://localhost:5000", cfg.Prediction.BaseURL)
		}
		if cfg.Geocode.BaseURL != "https://nominatim.openstreetmap.org" {
			t.Errorf("Geocode.BaseURL = %s, want https://nominatim.openstreetmap.org", cfg.Geocode.BaseURL)
		}
		if cfg.Overlay.Path != "./data/overlay" {
			t.Errorf("Overlay.Path = %s, want ./data/overlay", cfg.Overlay.Path)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.GenAI != 60 {
			t.Errorf("RateLimit.GenAI = %d, want 60", cfg.RateLimit.GenAI)
		}
	})

	t.Run("missing genai api key does not fail load", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.GenAI.APIKey != "" {
			t.Errorf("GenAI.APIKey = %q, want empty", cfg.GenAI.APIKey)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("KALPAVRUKSHA_SERVER_PORT", "9090")
		os.Setenv("KALPAVRUKSHA_SERVER_ENVIRONMENT", "production")
		os.Setenv("KALPAVRUKSHA_GENAI_API_KEY", "custom-api-key")
		os.Setenv("KALPAVRUKSHA_GENAI_MODEL", "gemini-1.5-pro")
		os.Setenv("KALPAVRUKSHA_PREDICTION_BASE_URL", "https://predict.example.com")
		os.Setenv("KALPAVRUKSHA_DOCUMENT_BASE_URL", "https://cdn.example.com")
		os.Setenv("KALPAVRUKSHA_OVERLAY_PATH", "/var/lib/kalpavruksha/overlay")
		os.Setenv("KALPAVRUKSHA_CACHE_TTL", "24h")
		os.Setenv("KALPAVRUKSHA_RATELIMIT_PER_IP", "200")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.GenAI.APIKey != "custom-api-key" {
			t.Errorf("GenAI.APIKey = %s, want custom-api-key", cfg.GenAI.APIKey)
		}
		if cfg.GenAI.Model != "gemini-1.5-pro" {
			t.Errorf("GenAI.Model = %s, want gemini-1.5-pro", cfg.GenAI.Model)
		}
		if cfg.Prediction.BaseURL != "https://predict.example.com" {
			t.Errorf("Prediction.BaseURL = %s, want https://predict.example.com", cfg.Prediction.BaseURL)
		}
		if cfg.Document.BaseURL != "https://cdn.example.com" {
			t.Errorf("Document.BaseURL = %s, want https://cdn.example.com", cfg.Document.BaseURL)
		}
		if cfg.Overlay.Path != "/var/lib/kalpavruksha/overlay" {
			t.Errorf("Overlay.Path = %s, want /var/lib/kalpavruksha/overlay", cfg.Overlay.Path)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
	})

	t.Run("fails when prediction base URL is cleared", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("KALPAVRUKSHA_PREDICTION_BASE_URL", " ")
		defer cleanupEnv()

		// Viper treats a single space as a non-empty value, so force the
		// empty string through validate directly.
		cfg := &Config{
			Prediction: PredictionConfig{BaseURL: ""},
			Overlay:    OverlayConfig{Path: "./data/overlay"},
		}
		if err := validate(cfg); err == nil {
			t.Error("validate() = nil, want error for empty prediction base URL")
		}
	})

	t.Run("fails when overlay path is empty", func(t *testing.T) {
		cfg := &Config{
			Prediction: PredictionConfig{BaseURL: "http://localhost:5000"},
			Overlay:    OverlayConfig{Path: ""},
		}
		if err := validate(cfg); err == nil {
			t.Error("validate() = nil, want error for empty overlay path")
		}
	})

	t.Run("fails when cache TTL is negative", func(t *testing.T) {
		cfg := &Config{
			Prediction: PredictionConfig{BaseURL: "http://localhost:5000"},
			Overlay:    OverlayConfig{Path: "./data/overlay"},
			Cache:      CacheConfig{TTL: -time.Minute},
		}
		if err := validate(cfg); err == nil {
			t.Error("validate() = nil, want error for negative cache TTL")
		}
	})
}
