package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kalpavruksha/backend/internal/domain"
)

// Client handles communication with the custom YOLO prediction backend
// (POST {baseURL}/predict, multipart field "file").
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker[*domain.PredictionResult]
}

// NewClient creates a new prediction backend client. The backend loads two
// torch models and can stall or flap on cold starts, so calls run behind a
// circuit breaker that opens after 5 consecutive failures.
func NewClient(baseURL string) *Client {
	settings := gobreaker.Settings{
		Name:    "prediction-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[PREDICT] circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &Client{
		httpClient: &http.Client{
			// Inference on a cold backend can take a while
			Timeout: 60 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		breaker: gobreaker.NewCircuitBreaker[*domain.PredictionResult](settings),
	}
}

// Predict uploads an image and returns the backend's prediction.
// Non-2xx responses surface as errors carrying the status code and body.
func (c *Client) Predict(ctx context.Context, filename string, image []byte) (*domain.PredictionResult, error) {
	return c.breaker.Execute(func() (*domain.PredictionResult, error) {
		return c.predict(ctx, filename, image)
	})
}

func (c *Client) predict(ctx context.Context, filename string, image []byte) (*domain.PredictionResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", "Kalpavruksha/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPredictionFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("[PREDICT] backend error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrPredictionFailure, resp.StatusCode, string(body))
	}

	var result domain.PredictionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
