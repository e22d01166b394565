package document

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kalpavruksha/backend/internal/domain"
)

// documentPath is where the frontend deployment serves its recommendation
// dataset. Centrally updatable without a code change.
const documentPath = "/data/products.json"

// Client fetches the centrally served recommendation document.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new document source client
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchDocument retrieves and decodes the recommendation document.
// Callers treat any error as an empty document; this client just reports it.
func (c *Client) FetchDocument(ctx context.Context) (*domain.RecommendationDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+documentPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Kalpavruksha/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrDocumentUnavailable, resp.StatusCode)
	}

	var doc domain.RecommendationDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
	}

	return &doc, nil
}
