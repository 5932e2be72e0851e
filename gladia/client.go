package gladia

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gladia-io/gladia-go/internal/envconfig"
	"github.com/gladia-io/gladia-go/internal/httpx"
	"github.com/gladia-io/gladia-go/internal/retry"
	"github.com/gladia-io/gladia-go/internal/wsconn"
	"github.com/gladia-io/gladia-go/live"
)

func defaultOptions() Options {
	env := envconfig.Defaults()
	return Options{
		APIKey: env.APIKey,
		APIURL: env.APIURL,
		Region: env.Region,
		HTTPRetry: HTTPRetryOptions{
			MaxAttempts: IntPtr(2),
			StatusCodes: []CodeRange{
				retry.Code(408), retry.Code(413), retry.Code(429),
				{Low: 500, High: 599},
			},
			Delay: retry.ExponentialDelay(300*time.Millisecond, 10*time.Second),
		},
		HTTPTimeout: 10 * time.Second,
		WSRetry: WSRetryOptions{
			MaxAttemptsPerConnection: IntPtr(5),
			MaxConnections:           IntPtr(0),
			CloseCodes: []CodeRange{
				{Low: 1002, High: 4399},
				{Low: 4500, High: 9999},
			},
			Delay: retry.ExponentialDelay(300*time.Millisecond, 2*time.Second),
		},
		WSTimeout: 10 * time.Second,
	}
}

// Client is the process-wide Gladia API client: a validated, merged set of
// Options plus the HTTP client used for session allocation. It holds no
// per-session state; every call to LiveV2 creates an independent Session.
type Client struct {
	opts Options
	http *httpx.Client
}

// NewClient merges opts with the client defaults (environment-derived
// APIKey/APIURL/Region plus built-in retry and timeout values), validates the
// result, and returns a ready-to-use Client. Construction is the only place
// a ConfigError is returned synchronously; once a Session exists, the same
// class of problem is instead surfaced as an "error" event plus a terminal
// close, separating request-time validation errors from async streaming
// errors.
func NewClient(opts Options) (*Client, error) {
	merged := deepMerge(opts, defaultOptions())
	if err := validate(merged); err != nil {
		return nil, err
	}

	headers := http.Header{}
	for k, v := range merged.HTTPHeaders {
		headers.Set(k, v)
	}
	if u, err := url.Parse(merged.APIURL); err == nil && strings.HasSuffix(u.Hostname(), ".gladia.io") {
		headers.Set("X-GLADIA-KEY", merged.APIKey)
	}
	if merged.Region != "" {
		headers.Set("X-GLADIA-REGION", merged.Region)
	}

	httpMaxAttempts := 0
	if merged.HTTPRetry.MaxAttempts != nil {
		httpMaxAttempts = *merged.HTTPRetry.MaxAttempts
	}
	httpClient := httpx.New(httpx.Options{
		BaseURL: merged.APIURL,
		Headers: headers,
		Timeout: merged.HTTPTimeout,
		Retry: httpx.RetryOptions{
			MaxAttempts: httpMaxAttempts,
			StatusCodes: merged.HTTPRetry.StatusCodes,
			Delay:       merged.HTTPRetry.Delay,
		},
	})

	return &Client{opts: merged, http: httpClient}, nil
}

// LiveV2 allocates a new Live Session. The returned Session begins its init
// handshake immediately; use its On*/Once* methods to subscribe to the
// event stream before or after this call returns (listeners registered
// after a one-shot event already fired do not receive replay).
func (c *Client) LiveV2(ctx context.Context, req live.InitRequest) *live.Session {
	maxAttemptsPerConnection := 0
	if c.opts.WSRetry.MaxAttemptsPerConnection != nil {
		maxAttemptsPerConnection = *c.opts.WSRetry.MaxAttemptsPerConnection
	}
	maxConnections := 0
	if c.opts.WSRetry.MaxConnections != nil {
		maxConnections = *c.opts.WSRetry.MaxConnections
	}
	wsRetry := wsconn.RetryPolicy{
		MaxAttemptsPerConnection: maxAttemptsPerConnection,
		MaxConnections:           maxConnections,
		Delay:                    c.opts.WSRetry.Delay,
	}
	for _, cr := range c.opts.WSRetry.CloseCodes {
		wsRetry.CloseCodes = append(wsRetry.CloseCodes, wsconn.CodeRange(cr))
	}

	return live.NewSession(ctx, c.http, req, wsRetry, c.opts.WSTimeout, c.opts.Logger)
}
