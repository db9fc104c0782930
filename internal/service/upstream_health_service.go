package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/config"
)

// UpstreamHealthService checks the API for the readiness endpoint.
type UpstreamHealthService struct {
	url     string
	metrics *MetricsService
	client  *http.Client
}

// NewUpstreamHealthService constructs the health check from upstream configuration.
func NewUpstreamHealthService(cfg config.UpstreamConfig, metrics *MetricsService) *UpstreamHealthService {
	timeout := cfg.HealthTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	url := cfg.HealthURL
	if url == "" {
		url = cfg.BaseURL
	}
	return &UpstreamHealthService{
		url:     url,
		metrics: metrics,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ping checks the API. Any response below 500 counts as reachable.
func (s *UpstreamHealthService) Ping(ctx context.Context) (models.UpstreamPingResult, error) {
	result := models.UpstreamPingResult{Target: s.url, ObservedAt: time.Now().UTC()}
	if s.url == "" {
		err := errors.New("upstream health URL not configured")
		result.Error = err.Error()
		return result, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	result.Duration = time.Since(start)

	statusCode := http.StatusServiceUnavailable
	if err != nil {
		result.Error = err.Error()
	} else {
		defer resp.Body.Close()
		statusCode = resp.StatusCode
		result.StatusCode = resp.StatusCode
		if resp.StatusCode >= http.StatusInternalServerError {
			result.Error = fmt.Sprintf("received status %d", resp.StatusCode)
			err = fmt.Errorf("upstream health check failed: %s", result.Error)
		}
		result.Reachable = resp.StatusCode < http.StatusInternalServerError
	}

	s.metrics.ObserveUpstreamRequest("health", http.MethodGet, statusCode, result.Duration)
	return result, err
}
