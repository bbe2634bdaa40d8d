// Package sources contains the HTTP clients for the three upstream
// statistical APIs (FRED, BLS, Census). Clients are thin: one synchronous
// request per call, no retries, shared courtesy rate limiting. All response
// interpretation beyond deserialization lives in the panel package.
package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Table is a Census-style response: a header row followed by data rows.
type Table [][]string

// Client is the shared transport for all source clients. The rate limiter
// spaces requests out as a courtesy to the public APIs; it is not a retry or
// backoff mechanism.
type Client struct {
	hc      *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient builds the shared transport. A nil logger falls back to
// slog.Default.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		hc:      &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(4), 1),
		logger:  logger.With(slog.String("component", "sources")),
	}
}

// credentialParams are query parameters that must never appear in logs or
// error messages.
var credentialParams = []string{"api_key", "key", "registrationkey"}

// RedactURL replaces credential query parameters with a placeholder so the
// URL is safe to log or embed in an error.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for _, p := range credentialParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// getJSON performs a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

// postJSON performs a POST with a JSON body and decodes the JSON response
// into out.
func (c *Client) postJSON(ctx context.Context, rawURL string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, RedactURL(req.URL.String()), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream request",
		slog.String("method", req.Method),
		slog.String("url", RedactURL(req.URL.String())),
		slog.Int("status", resp.StatusCode),
		slog.String("duration", time.Since(start).String()),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: HTTP %d: %s", req.Method, RedactURL(req.URL.String()), resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", RedactURL(req.URL.String()), err)
	}
	return nil
}
