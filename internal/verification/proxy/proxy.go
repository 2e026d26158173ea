// Package proxy forwards verification requests to the issuance authority.
//
// The proxy holds no credential state of its own: every trust decision is
// delegated to the issuance service's internal check endpoint and relayed
// back unmodified. That property is what keeps it from becoming a second
// source of truth.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"credmint/internal/verification/metrics"
	"credmint/pkg/platform/sentinel"
)

// Upstream is the relayed outcome of a completed downstream call: the exact
// status and body the issuance authority produced, application-level errors
// included.
type Upstream struct {
	StatusCode int
	Body       []byte
}

// Client calls the issuance internal check endpoint.
type Client struct {
	checkURL string
	http     *http.Client
	metrics  *metrics.Metrics
}

type Option func(c *Client)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New constructs a Client. The timeout bounds the whole downstream exchange
// so a slow issuance service cannot hold a verification request indefinitely.
func New(checkURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		checkURL: checkURL,
		http:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Forward posts the pair to the check endpoint and returns whatever it
// answered. A transport-level failure (connection refused, timeout, DNS) is
// reported as sentinel.ErrUnavailable: no response exists to relay, and
// transport detail must not leak to the caller.
func (c *Client) Forward(ctx context.Context, username, password string) (*Upstream, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("encode check request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.checkURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveUpstream(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("call issuance check: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read check response: %w: %w", sentinel.ErrUnavailable, err)
	}

	return &Upstream{StatusCode: resp.StatusCode, Body: body}, nil
}
