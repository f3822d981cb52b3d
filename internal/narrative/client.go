package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

// maxResponseBytes caps the generator response body.
const maxResponseBytes = 1 << 20

// Client posts prompts to the configured narrative endpoint.
type Client struct {
	config     domain.NarrativeConfig
	httpClient *http.Client
	rateLimit  *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

var _ domain.NarrativeGenerator = (*Client)(nil)

type generateRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// NewClient creates a narrative client. A disabled configuration yields a client whose
// Generate always fails with domain.ErrNarrativeDisabled.
func NewClient(config domain.NarrativeConfig, logger *logrus.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RateLimit <= 0 {
		config.RateLimit = 1
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimit: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "narrative",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("Circuit breaker state changed")
			},
		}),
		logger: logger,
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.config.Enabled && c.config.BaseURL != ""
}

// Generate sends the prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", domain.ErrNarrativeDisabled
	}

	if err := c.rateLimit.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	requestID := uuid.New().String()
	start := time.Now()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, requestID, prompt)
	})
	if err != nil {
		c.logger.WithError(err).WithField("request_id", requestID).Warn("Narrative generation failed")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("narrative endpoint unavailable: %w", err)
		}
		return "", err
	}

	c.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"duration":   time.Since(start).String(),
	}).Info("Narrative generated")

	return result.(string), nil
}

func (c *Client) post(ctx context.Context, requestID, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: c.config.Model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("narrative endpoint returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("narrative endpoint error: %s", out.Error)
	}
	if out.Text == "" {
		return "", fmt.Errorf("narrative endpoint returned no text")
	}
	return out.Text, nil
}
