package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kalpavruksha/backend/internal/domain"
)

// Client handles reverse geocoding through a Nominatim-compatible endpoint.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new reverse-geocoding client.
// Nominatim's usage policy caps anonymous clients at 1 request per second.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

// ReverseGeocode resolves coordinates to a display name. Callers degrade any
// error to the literal "N/A"; this client just reports failures.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("format", "jsonv2")
	params.Add("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim rejects requests without an identifying User-Agent
	req.Header.Set("User-Agent", "Kalpavruksha/1.0 (coconut farming assistant)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeocodeFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrGeocodeFailure, resp.StatusCode)
	}

	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeocodeFailure, err)
	}
	if payload.DisplayName == "" {
		return "", fmt.Errorf("%w: empty display name", domain.ErrGeocodeFailure)
	}

	return payload.DisplayName, nil
}
