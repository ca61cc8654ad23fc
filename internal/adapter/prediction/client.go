package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/saferoute/risk-report-service/internal/domain"
	"github.com/saferoute/risk-report-service/internal/observability"
)

// Client implements domain.Predictor against the remote prediction service's
// HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a prediction service client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Predict posts the submission and returns the raw response body unparsed.
// The body is handed to domain.NormalizeAssessment by the caller; transport
// and status failures are errors here, response content never is.
func (c *Client) Predict(ctx context.Context, sub domain.Submission) ([]byte, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.PredictionAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.PredictionRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("prediction request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.PredictionRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.PredictionRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("prediction API error: status %d: %s", resp.StatusCode, body)
	}

	c.metrics.PredictionRequests.WithLabelValues("success").Inc()
	return body, nil
}

// CheckHealth probes the prediction service's health endpoint.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("prediction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prediction service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
