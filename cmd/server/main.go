package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/kalpavruksha/backend/config"
	httpDelivery "github.com/kalpavruksha/backend/internal/delivery/http"
	"github.com/kalpavruksha/backend/internal/infrastructure/cache"
	"github.com/kalpavruksha/backend/internal/infrastructure/document"
	"github.com/kalpavruksha/backend/internal/infrastructure/gemini"
	"github.com/kalpavruksha/backend/internal/infrastructure/geocode"
	"github.com/kalpavruksha/backend/internal/infrastructure/overlay"
	"github.com/kalpavruksha/backend/internal/infrastructure/predict"
	"github.com/kalpavruksha/backend/internal/usecase"
)

func main() {
	// Local development convenience; a missing .env is fine
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Kalpavruksha Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	ctx := context.Background()

	// Generative AI client. A missing key is logged, not fatal: the server
	// still serves static recommendations and the prediction proxy.
	if cfg.GenAI.APIKey == "" {
		log.Printf("ERROR: GenAI API key is NOT CONFIGURED - AI calls will fail! (set KALPAVRUKSHA_GENAI_API_KEY)")
	} else {
		log.Printf("GenAI configured: model=%s (key: %s...)", cfg.GenAI.Model, cfg.GenAI.APIKey[:min(8, len(cfg.GenAI.APIKey))])
	}
	genaiClient, err := gemini.NewClient(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model, cfg.RateLimit.GenAI)
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}
	defer genaiClient.Close()

	// Overlay store (read-only recommendation overlay)
	overlayDB, err := overlay.Open(cfg.Overlay.Path)
	if err != nil {
		log.Fatalf("Failed to open overlay store: %v", err)
	}
	defer overlayDB.Close()
	overlayStore := overlay.NewStore(overlayDB)
	log.Printf("Overlay store: %s", cfg.Overlay.Path)

	// Remaining infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	predictClient := predict.NewClient(cfg.Prediction.BaseURL)
	documentClient := document.NewClient(cfg.Document.BaseURL)
	geocodeClient := geocode.NewClient(cfg.Geocode.BaseURL)

	log.Printf("Prediction backend: %s", cfg.Prediction.BaseURL)
	log.Printf("Document source: %s", cfg.Document.BaseURL)
	log.Printf("Document cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	recommendationService := usecase.NewRecommendationService(
		documentClient,
		overlayStore,
		genaiClient,
		memoryCache,
		usecase.RecommendationServiceConfig{CacheTTL: cfg.Cache.TTL},
	)
	diagnosisService := usecase.NewDiagnosisService(genaiClient, predictClient)
	expertsService := usecase.NewExpertsService(genaiClient, geocodeClient)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(diagnosisService, recommendationService, expertsService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
