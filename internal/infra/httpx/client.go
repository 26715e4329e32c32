// Package httpx is the shared outbound HTTP client for channel adapters.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventcast/internal/pkg/errs"

	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// Client wraps net/http with a tuned transport and a per-channel rate
// limiter. Construct one per channel; adapters share nothing mutable.
type Client struct {
	hc      *http.Client
	limiter *rate.Limiter
}

func New(timeout time.Duration, rps float64) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout, Transport: tr},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}
}

// PostJSON sends a JSON body and decodes the response into out (when out is
// non-nil). The HTTP status is returned alongside any transport error;
// non-2xx statuses are not errors here, adapters interpret them.
func (c *Client) PostJSON(ctx context.Context, rawURL string, headers map[string]string, body any, out any) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, errs.Wrap(err, "encode request body")
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, &buf)
	if err != nil {
		return 0, errs.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

// PostForm sends form-encoded values, as the Graph API expects.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, errs.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, errs.Wrap(err, "build request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) (int, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return 0, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, errs.Wrap(err, "read response body")
	}
	if out != nil && len(raw) > 0 {
		// Error envelopes decode into the same target as success bodies.
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, errs.Wrap(err, "decode response body")
		}
	}
	return resp.StatusCode, nil
}

// IsTimeout reports whether an outbound attempt exceeded its bound, either
// through the per-call context or the client's own timeout.
func IsTimeout(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var ne net.Error
	return errs.As(err, &ne) && ne.Timeout()
}
