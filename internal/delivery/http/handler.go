package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kalpavruksha/backend/internal/domain"
	"github.com/kalpavruksha/backend/internal/usecase"
)

// Diagnoser is what the handlers need from the diagnosis usecase
type Diagnoser interface {
	ClassifyImage(ctx context.Context, image []byte, mimeType string) (*domain.DiseaseVerdict, error)
	Predict(ctx context.Context, filename string, image []byte) (*domain.PredictionResult, error)
}

// Recommender is what the handlers need from the recommendation usecase
type Recommender interface {
	ResolveProducts(ctx context.Context, diseaseType string) []domain.Product
	GetTreatment(ctx context.Context, diseaseType, language string) string
}

// ExpertFinder is what the handlers need from the experts usecase
type ExpertFinder interface {
	FindNearbyExperts(ctx context.Context, lat, lon float64) ([]domain.Expert, error)
	AskAssistant(ctx context.Context, question, language string) (string, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	diagnosis       Diagnoser
	recommendations Recommender
	experts         ExpertFinder
}

// NewHandler creates a new HTTP handler
func NewHandler(diagnosis Diagnoser, recommendations Recommender, experts ExpertFinder) *Handler {
	return &Handler{
		diagnosis:       diagnosis,
		recommendations: recommendations,
		experts:         experts,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "kalpavruksha-backend",
		"version": "1.0.0",
	})
}

// Diagnose classifies an uploaded palm image through the AI service
func (h *Handler) Diagnose(c *gin.Context) {
	image, _, mimeType, ok := readImageUpload(c)
	if !ok {
		return
	}

	verdict, err := h.diagnosis.ClassifyImage(c.Request.Context(), image, mimeType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, verdict)
}

// Predict forwards an uploaded image to the custom prediction backend
func (h *Handler) Predict(c *gin.Context) {
	image, filename, _, ok := readImageUpload(c)
	if !ok {
		return
	}

	result, err := h.diagnosis.Predict(c.Request.Context(), filename, image)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recommendations resolves the merged product list for a disease
func (h *Handler) Recommendations(c *gin.Context) {
	disease := strings.TrimSpace(c.Query("disease"))
	if disease == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'disease' is required"})
		return
	}

	products := h.recommendations.ResolveProducts(c.Request.Context(), disease)

	c.JSON(http.StatusOK, gin.H{
		"disease":  disease,
		"products": products,
		"markdown": usecase.RenderProducts(products),
	})
}

type treatmentRequest struct {
	DiseaseType string `json:"diseaseType" binding:"required"`
	Language    string `json:"language"`
}

// Treatment generates a treatment plan for a disease. The usecase contract
// never fails, so this always answers 200.
func (h *Handler) Treatment(c *gin.Context) {
	var req treatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diseaseType is required"})
		return
	}

	treatment := h.recommendations.GetTreatment(c.Request.Context(), req.DiseaseType, req.Language)

	c.JSON(http.StatusOK, gin.H{"treatment": treatment})
}

// Experts lists agricultural experts near the given coordinates
func (h *Handler) Experts(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters 'lat' and 'lon' must be valid coordinates"})
		return
	}

	experts, err := h.experts.FindNearbyExperts(c.Request.Context(), lat, lon)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"experts": experts})
}

type assistantRequest struct {
	Question string `json:"question" binding:"required"`
	Language string `json:"language"`
}

// Assistant answers a free-text farming question
func (h *Handler) Assistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := h.experts.AskAssistant(c.Request.Context(), req.Question, req.Language)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// readImageUpload extracts the uploaded image from field "file" (falling back
// to "image"), responding with 400 itself when the upload is unusable.
func readImageUpload(c *gin.Context) (image []byte, filename, mimeType string, ok bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader, err = c.FormFile("image")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' with an image is required"})
		return nil, "", "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return nil, "", "", false
	}
	defer f.Close()

	image, err = io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return nil, "", "", false
	}

	return image, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), true
}

// respondServiceError maps usecase errors to HTTP status codes
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMalformedAIResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "the AI service returned an unreadable response, please retry"})
	case errors.Is(err, domain.ErrPredictionFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
