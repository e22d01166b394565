package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	GenAI      GenAIConfig
	Prediction PredictionConfig
	Document   DocumentConfig
	Overlay    OverlayConfig
	Geocode    GeocodeConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GenAIConfig holds generative AI service configuration.
// A missing API key is deliberately not a startup error: the server comes up
// and AI-backed calls fail downstream instead (main logs a warning).
type GenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// PredictionConfig holds the custom prediction backend configuration
type PredictionConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// DocumentConfig holds the recommendation document source configuration
type DocumentConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// OverlayConfig holds the persisted recommendation overlay configuration
type OverlayConfig struct {
	Path string `mapstructure:"path"`
}

// GeocodeConfig holds reverse-geocoding configuration
type GeocodeConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
	GenAI int `mapstructure:"genai"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/kalpavruksha/")

	// Environment variable settings. Nested keys map to underscore-style
	// variables, e.g. genai.api_key <- KALPAVRUKSHA_GENAI_API_KEY.
	v.SetEnvPrefix("KALPAVRUKSHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{
		"https://kalpavruksha-lake.vercel.app",
		"https://kalpavruksha-01-krfn.vercel.app",
		"https://*.vercel.app",
		"http://localhost:5173",
		"http://localhost:3000",
	})

	// Generative AI defaults
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.model", "gemini-1.5-flash")

	// Prediction backend defaults (Flask YOLO service)
	v.SetDefault("prediction.base_url", "http://localhost:5000")

	// Recommendation document defaults
	v.SetDefault("document.base_url", "https://kalpavruksha-lake.vercel.app")

	// Overlay store defaults
	v.SetDefault("overlay.path", "./data/overlay")

	// Geocoding defaults
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.genai", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Prediction.BaseURL == "" {
		return fmt.Errorf("prediction base URL is required (set KALPAVRUKSHA_PREDICTION_BASE_URL)")
	}

	if config.Overlay.Path == "" {
		return fmt.Errorf("overlay path is required (set KALPAVRUKSHA_OVERLAY_PATH)")
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got: %s", config.Cache.TTL)
	}

	return nil
}
