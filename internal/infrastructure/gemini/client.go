package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// Client wraps the Gemini SDK behind the calls this service makes.
// Schema-constrained calls return the raw JSON text; parsing belongs to the
// usecase layer so transport stays thin.
type Client struct {
	client      *genai.Client
	model       string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Gemini client. requestsPerMinute bounds outbound
// calls across all endpoints sharing this client. Extra options are passed to
// the SDK, e.g. option.WithEndpoint.
func NewClient(ctx context.Context, apiKey, model string, requestsPerMinute int, opts ...option.ClientOption) (*Client, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		client:      client,
		model:       model,
		rateLimiter: limiter,
	}, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	return c.client.Close()
}

// generate runs one model call. A non-nil schema switches the model into
// JSON response mode constrained to that schema.
func (c *Client) generate(ctx context.Context, schema *genai.Schema, parts ...genai.Part) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	model := c.client.GenerativeModel(c.model)
	if schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = schema
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt), nil
			}
		}
	}

	return "", fmt.Errorf("no response candidates or content")
}

// ClassifyDisease analyzes a palm image against the disease-verdict schema
// and returns the raw JSON text.
func (c *Client) ClassifyDisease(ctx context.Context, image []byte, mimeType string) (string, error) {
	return c.generate(ctx, verdictSchema,
		genai.Text(classifyPrompt),
		genai.Blob{MIMEType: mimeType, Data: image},
	)
}

// FindExperts answers a location prompt against the experts array schema
// and returns the raw JSON text.
func (c *Client) FindExperts(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, expertsSchema, genai.Text(prompt))
}

// GenerateText answers a free-text prompt with no schema constraint.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, nil, genai.Text(prompt))
}
