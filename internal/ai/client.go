// Package ai proxies code completion requests to the AI provider backend.
//
// The client wraps the provider HTTP API with a circuit breaker so a
// misbehaving upstream fails fast instead of tying up request handlers, and
// records token spend and latency for every round trip.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/config"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/resilience"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/types"
)

// ErrUnavailable is returned when the provider backend rejects or cannot
// serve a completion request.
var ErrUnavailable = errors.New("ai service unavailable")

// Usage reports token spend for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is the provider's answer to a completion request.
type CompletionResponse struct {
	Completion string `json:"completion"`
	Model      string `json:"model"`
	Usage      Usage  `json:"usage"`
}

// Client talks to the AI provider backend.
type Client struct {
	http     *resty.Client
	breaker  *resilience.Breaker
	metrics  *monitoring.Registry
	provider string
	model    string
}

// NewClient creates a provider client from configuration.
func NewClient(cfg config.AIConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: http,
		breaker: resilience.New("ai", resilience.Settings{
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
		}),
		provider: cfg.Provider,
		model:    cfg.Model,
	}
}

// WithMetrics adds usage tracking to the client.
func (c *Client) WithMetrics(metrics *monitoring.Registry) *Client {
	c.metrics = metrics
	return c
}

// BreakerState reports the circuit breaker's current state for health checks.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Complete requests a completion from the provider. Requests are rejected
// immediately while the breaker is open.
func (c *Client) Complete(ctx context.Context, req types.CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, req)
	})

	if c.metrics != nil {
		promptTokens, completionTokens := 0, 0
		if resp, ok := result.(*CompletionResponse); ok && resp != nil {
			promptTokens = resp.Usage.PromptTokens
			completionTokens = resp.Usage.CompletionTokens
		}
		c.metrics.RecordAIUsage(c.provider, c.model, promptTokens, completionTokens, time.Since(start), err)
	}

	if err != nil {
		return nil, err
	}
	return result.(*CompletionResponse), nil
}

func (c *Client) complete(ctx context.Context, req types.CompletionRequest) (*CompletionResponse, error) {
	var out CompletionResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1/complete")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	if out.Model == "" {
		out.Model = c.model
	}
	return &out, nil
}
