package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/kalpavruksha/backend/internal/domain"
)

// maxImageBytes caps uploads before they reach the AI service or the
// prediction backend. Matches the frontend's camera capture ceiling.
const maxImageBytes = 8 << 20

// DiagnosisService classifies palm images through the generative service and
// proxies the custom YOLO prediction backend.
type DiagnosisService struct {
	generative domain.GenerativeClient
	prediction domain.PredictionClient
}

// NewDiagnosisService creates a new diagnosis service with dependencies
func NewDiagnosisService(generative domain.GenerativeClient, prediction domain.PredictionClient) *DiagnosisService {
	return &DiagnosisService{
		generative: generative,
		prediction: prediction,
	}
}

// ClassifyImage sends an image to the generative service with the fixed
// verdict schema and parses the typed result. A response that does not parse
// is a hard error (ErrMalformedAIResponse), never retried.
func (s *DiagnosisService) ClassifyImage(ctx context.Context, image []byte, mimeType string) (*domain.DiseaseVerdict, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidRequest)
	}
	if len(image) > maxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidRequest, maxImageBytes)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	raw, err := s.generative.ClassifyDisease(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	var verdict domain.DiseaseVerdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &verdict); err != nil {
		log.Printf("[DIAGNOSIS] unparseable verdict from AI service: %q", raw)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedAIResponse, err)
	}

	return &verdict, nil
}

// Predict forwards an image to the custom prediction backend and returns its
// result unchanged. Transport and HTTP failures surface to the caller.
func (s *DiagnosisService) Predict(ctx context.Context, filename string, image []byte) (*domain.PredictionResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidRequest)
	}
	if len(image) > maxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidRequest, maxImageBytes)
	}
	if filename == "" {
		filename = "upload.jpg"
	}

	return s.prediction.Predict(ctx, filename, image)
}
