package usecase

import (
	"context"

	"github.com/kalpavruksha/backend/internal/domain"
)

// Hand-rolled stubs for the domain interfaces, shared by the usecase tests.

type stubGenerative struct {
	classifyResponse string
	classifyErr      error
	expertsResponse  string
	expertsErr       error
	textResponses    []string
	textErrs         []error
	calls            int
	prompts          []string
}

func (s *stubGenerative) ClassifyDisease(ctx context.Context, image []byte, mimeType string) (string, error) {
	s.calls++
	return s.classifyResponse, s.classifyErr
}

func (s *stubGenerative) FindExperts(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.expertsResponse, s.expertsErr
}

func (s *stubGenerative) GenerateText(ctx context.Context, prompt string) (string, error) {
	idx := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if idx < len(s.textErrs) && s.textErrs[idx] != nil {
		return "", s.textErrs[idx]
	}
	if idx < len(s.textResponses) {
		return s.textResponses[idx], nil
	}
	if len(s.textResponses) > 0 {
		return s.textResponses[len(s.textResponses)-1], nil
	}
	return "", nil
}

type stubDocumentSource struct {
	doc   *domain.RecommendationDocument
	err   error
	calls int
}

func (s *stubDocumentSource) FetchDocument(ctx context.Context) (*domain.RecommendationDocument, error) {
	s.calls++
	return s.doc, s.err
}

type stubOverlay struct {
	doc *domain.RecommendationDocument
	err error
}

func (s *stubOverlay) ReadOverlay(ctx context.Context) (*domain.RecommendationDocument, error) {
	return s.doc, s.err
}

type stubPrediction struct {
	result   *domain.PredictionResult
	err      error
	filename string
}

func (s *stubPrediction) Predict(ctx context.Context, filename string, image []byte) (*domain.PredictionResult, error) {
	s.filename = filename
	return s.result, s.err
}

type stubGeocoder struct {
	location string
	err      error
}

func (s *stubGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return s.location, s.err
}

func emptyDoc() *domain.RecommendationDocument {
	return &domain.RecommendationDocument{}
}
