// internal/resolution/provider/client.go

// Package provider wraps outbound HTTP calls to the jobs/courses API. Every
// call applies a fixed timeout, retries transient failures a bounded number
// of times with a fixed delay, and normalizes any failure into a single
// *errors.ProviderError shape. The client knows nothing about caching or
// rate limiting; those are composed around it by the resolution pipeline.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/Rafael-N-Moura/ImpulsAI/internal/common/errors"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/metrics"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

const (
	jobsEndpoint    = "/api/v1/jobs/"
	coursesEndpoint = "/api/v1/courses/"
	healthEndpoint  = "/health"
)

// Config holds client settings.
type Config struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RetryAttempts int           // total attempts, including the first
	RetryDelay    time.Duration // fixed delay between attempts
}

// Client is the external provider HTTP client.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        logger.Logger
}

func New(cfg Config, log logger.Logger) *Client {
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		log:        log.WithFields(map[string]interface{}{"component": "provider"}),
	}
}

// HealthStatus is the provider health envelope.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchCourses queries the courses endpoint and returns normalized
// candidates tagged origin=external.
func (c *Client) SearchCourses(ctx context.Context, q models.Query) ([]models.Candidate, error) {
	body := map[string]interface{}{
		"query":    q.Term,
		"platform": defaultString(q.Platform, "all"),
		"limit":    q.Limit,
		"language": defaultString(q.Language, "pt"),
	}
	raw, err := c.do(ctx, http.MethodPost, coursesEndpoint, body, models.KindCourseSearch)
	if err != nil {
		return nil, err
	}

	var env courseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.NewMalformedResponse(err)
	}
	return env.normalize(), nil
}

// SearchJobs queries the jobs endpoint and returns normalized candidates
// tagged origin=external.
func (c *Client) SearchJobs(ctx context.Context, q models.Query) ([]models.Candidate, error) {
	body := map[string]interface{}{
		"query":    q.Term,
		"location": defaultString(q.Location, "Brazil"),
		"limit":    q.Limit,
	}
	raw, err := c.do(ctx, http.MethodPost, jobsEndpoint, body, models.KindJobSearch)
	if err != nil {
		return nil, err
	}

	var env jobEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.NewMalformedResponse(err)
	}
	return env.normalize(), nil
}

// GetCourse fetches one course by provider ID.
func (c *Client) GetCourse(ctx context.Context, id string) (*models.Candidate, error) {
	raw, err := c.do(ctx, http.MethodGet, coursesEndpoint+id, nil, models.KindCourseDetail)
	if err != nil {
		return nil, err
	}

	var env courseDetailEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.NewMalformedResponse(err)
	}
	cand := env.Course.normalize()
	return &cand, nil
}

// GetJob fetches one job posting by provider ID.
func (c *Client) GetJob(ctx context.Context, id string) (*models.Candidate, error) {
	raw, err := c.do(ctx, http.MethodGet, jobsEndpoint+id, nil, models.KindJobDetail)
	if err != nil {
		return nil, err
	}

	var env jobDetailEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.NewMalformedResponse(err)
	}
	cand := env.Job.normalize()
	return &cand, nil
}

// Health checks provider availability.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	raw, err := c.do(ctx, http.MethodGet, healthEndpoint, nil, models.KindHealth)
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, apperrors.NewMalformedResponse(err)
	}
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now().UTC()
	}
	return &status, nil
}

// do performs one request with bounded retry. Transient failures (retryable
// statuses, timeouts, connection errors) are retried after a fixed delay up
// to cfg.RetryAttempts total attempts; terminal failures return immediately.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, kind models.ResourceKind) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewMalformedResponse(fmt.Errorf("encode request body: %w", err))
		}
	}

	var lastErr *apperrors.ProviderError
	for attempt := 1; attempt <= c.cfg.RetryAttempts; attempt++ {
		if attempt > 1 {
			metrics.ProviderRetries.WithLabelValues(string(kind)).Inc()
			select {
			case <-time.After(c.cfg.RetryDelay):
			case <-ctx.Done():
				metrics.ProviderRequests.WithLabelValues(string(kind), "error").Inc()
				return nil, apperrors.NewProviderUnavailable(0, ctx.Err())
			}
		}

		data, perr := c.attempt(ctx, method, path, payload)
		if perr == nil {
			metrics.ProviderRequests.WithLabelValues(string(kind), "success").Inc()
			return data, nil
		}
		if !perr.Retryable {
			metrics.ProviderRequests.WithLabelValues(string(kind), "terminal").Inc()
			return nil, perr
		}

		lastErr = perr
		c.log.Debug("transient provider failure", map[string]interface{}{
			"path":    path,
			"attempt": attempt,
			"status":  perr.Status,
			"error":   perr.Details,
		})
	}

	metrics.ProviderRequests.WithLabelValues(string(kind), "error").Inc()
	return nil, lastErr
}

// attempt performs a single HTTP exchange and classifies the result.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte) ([]byte, *apperrors.ProviderError) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, apperrors.NewProviderRejected(0, err.Error())
	}
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts, connection resets and DNS failures are all transient.
		return nil, apperrors.NewProviderUnavailable(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewProviderUnavailable(resp.StatusCode, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	if isRetryableStatus(resp.StatusCode) {
		return nil, apperrors.NewProviderUnavailable(resp.StatusCode,
			fmt.Errorf("provider returned status %d", resp.StatusCode))
	}
	return nil, apperrors.NewProviderRejected(resp.StatusCode, truncate(string(data), 512))
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
