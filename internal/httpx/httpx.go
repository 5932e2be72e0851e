// Package httpx is the HTTP retry/backoff helper used for the one-shot
// session-allocation handshake: a status-code-classified retry policy shared
// in spirit with the WebSocket transport's reconnect policy.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gladia-io/gladia-go/internal/retry"
)

// RetryOptions configures which non-2xx statuses are retried and how long to
// wait between attempts.
type RetryOptions struct {
	MaxAttempts int
	StatusCodes []retry.CodeRange
	Delay       retry.DelayFunc
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Headers http.Header
	Retry   RetryOptions
	Timeout time.Duration

	// HTTPClient lets callers (and tests) swap in a custom *http.Client.
	// Defaults to http.DefaultClient's transport with Options.Timeout applied.
	HTTPClient *http.Client
}

// Error is returned when the allocator responds with a non-2xx status after
// exhausting retries. It carries enough of the request/response to let the
// caller's "error" event handler log something actionable.
type Error struct {
	Method    string
	URL       string
	Status    int
	Body      []byte
	Headers   http.Header
	RequestID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("httpx: %s %s: status %d: %s", e.Method, e.URL, e.Status, string(e.Body))
}

// Client performs JSON requests against a base URL with retry/backoff.
type Client struct {
	baseURL string
	headers http.Header
	retry   RetryOptions
	timeout time.Duration
	http    *http.Client
}

// New builds a Client from Options.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	headers := opts.Headers
	if headers == nil {
		headers = http.Header{}
	}
	return &Client{
		baseURL: opts.BaseURL,
		headers: headers,
		retry:   opts.Retry,
		timeout: opts.Timeout,
		http:    hc,
	}
}

// Timeout returns the per-request timeout the Client was configured with, for
// callers that need to describe a timeout-class error.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// PostJSON posts body (marshaled as JSON) to baseURL+path and decodes the
// JSON response into out. It retries on status codes matching Retry rules,
// sleeping Retry.Delay(attempt) between attempts, and otherwise returns a
// *Error describing the final non-2xx response.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("httpx: marshal request: %w", err)
	}

	url := c.baseURL + path
	attempt := 1
	for {
		resp, respBody, doErr := c.doOnce(ctx, url, payload)
		if doErr != nil {
			if !c.shouldRetryErr(attempt) {
				return doErr
			}
		} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out != nil {
				if err := json.Unmarshal(respBody, out); err != nil {
					return fmt.Errorf("httpx: decode response: %w", err)
				}
			}
			return nil
		} else if retry.MatchesAny(resp.StatusCode, c.retry.StatusCodes) && c.shouldRetryErr(attempt) {
			// fall through to retry
		} else {
			return &Error{
				Method:    http.MethodPost,
				URL:       url,
				Status:    resp.StatusCode,
				Body:      respBody,
				Headers:   resp.Header,
				RequestID: resp.Header.Get("X-Request-Id"),
			}
		}

		delay := time.Duration(0)
		if c.retry.Delay != nil {
			delay = c.retry.Delay(attempt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		attempt++
	}
}

func (c *Client) shouldRetryErr(attempt int) bool {
	return c.retry.MaxAttempts == 0 || attempt < c.retry.MaxAttempts
}

func (c *Client) doOnce(ctx context.Context, url string, payload []byte) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("httpx: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("httpx: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("httpx: read response: %w", err)
	}
	return resp, body, nil
}
