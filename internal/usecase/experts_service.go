package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/kalpavruksha/backend/internal/domain"
)

// ExpertsService finds nearby agricultural experts and answers free-text
// farming questions through the generative service.
type ExpertsService struct {
	generative domain.GenerativeClient
	geocoder   domain.Geocoder
}

// NewExpertsService creates a new experts service with dependencies
func NewExpertsService(generative domain.GenerativeClient, geocoder domain.Geocoder) *ExpertsService {
	return &ExpertsService{
		generative: generative,
		geocoder:   geocoder,
	}
}

// FindNearbyExperts reverse-geocodes the coordinates and asks the generative
// service for experts around that location. Geocoding failures degrade to the
// literal "N/A" location; a response that does not parse against the experts
// schema is ErrMalformedAIResponse.
func (s *ExpertsService) FindNearbyExperts(ctx context.Context, lat, lon float64) ([]domain.Expert, error) {
	location, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		log.Printf("[EXPERTS] reverse geocoding failed: %v", err)
		location = "N/A"
	}

	raw, err := s.generative.FindExperts(ctx, buildExpertsPrompt(location))
	if err != nil {
		return nil, err
	}

	var experts []domain.Expert
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &experts); err != nil {
		log.Printf("[EXPERTS] unparseable experts list from AI service: %q", raw)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedAIResponse, err)
	}

	return experts, nil
}

// AskAssistant forwards a free-text question to the generative service in the
// requested language and returns the trimmed answer verbatim.
func (s *ExpertsService) AskAssistant(ctx context.Context, question, language string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: empty question", domain.ErrInvalidRequest)
	}

	text, err := s.generative.GenerateText(ctx, buildAssistantPrompt(question, language))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}
