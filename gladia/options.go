// Package gladia is the root client package: it resolves environment
// defaults, merges them with caller-supplied options, validates the result,
// and exposes the Live Session factory. It is a small validated façade in
// front of the real engineering in the leaf packages.
package gladia

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gladia-io/gladia-go/internal/retry"
)

// CodeRange re-exports retry.CodeRange for callers configuring retry/close
// code policies without importing an internal package.
type CodeRange = retry.CodeRange

// HTTPRetryOptions configures the init-call retry policy. MaxAttempts is a
// pointer so deepMerge can tell "caller left this unset" (nil) apart from an
// explicit 0, which means unlimited attempts.
type HTTPRetryOptions struct {
	MaxAttempts *int
	StatusCodes []CodeRange
	Delay       func(attempt int) time.Duration
}

// WSRetryOptions configures the transport reconnect policy.
// MaxAttemptsPerConnection and MaxConnections are pointers for the same
// unset-vs-explicit-zero reason as HTTPRetryOptions.MaxAttempts: an explicit
// 0 means unlimited attempts/reconnects and must survive merging with
// environment defaults.
type WSRetryOptions struct {
	MaxAttemptsPerConnection *int
	MaxConnections           *int
	CloseCodes               []CodeRange
	Delay                    func(attempt int) time.Duration
}

// IntPtr is a small helper for populating the *int "explicit value" fields
// of HTTPRetryOptions/WSRetryOptions from an int literal, e.g.
// HTTPRetryOptions{MaxAttempts: gladia.IntPtr(0)} for unlimited retries.
func IntPtr(v int) *int {
	return &v
}

// Options configures a Client. Any zero-valued field is filled in by
// NewClient from the client defaults: APIKey, APIURL and Region come from
// the process-wide environment snapshot (internal/envconfig.Defaults), and
// the retry policies and timeouts from built-in values.
type Options struct {
	APIKey      string
	APIURL      string
	Region      string
	HTTPHeaders map[string]string
	HTTPRetry   HTTPRetryOptions
	HTTPTimeout time.Duration
	WSRetry     WSRetryOptions
	WSTimeout   time.Duration
	Logger      *slog.Logger
}

// ConfigError reports an invalid option combination, caught synchronously at
// construction time rather than surfaced as an asynchronous "error" event.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "gladia: invalid configuration: " + e.Reason
}

var validSchemes = map[string]bool{
	"http": true, "https": true, "ws": true, "wss": true,
}

// validate checks that APIURL has a supported scheme and that an API key is
// present whenever the host is an official gladia.io endpoint.
func validate(o Options) error {
	u, err := url.Parse(o.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Reason: "api_url must be an absolute http(s)/ws(s) URL, got " + o.APIURL}
	}
	if !validSchemes[u.Scheme] {
		return &ConfigError{Reason: "api_url scheme must be one of http, https, ws, wss, got " + u.Scheme}
	}
	if strings.HasSuffix(u.Hostname(), ".gladia.io") && o.APIKey == "" {
		return &ConfigError{Reason: "api_key is required when api_url targets a gladia.io host"}
	}
	return nil
}

// deepMerge fills zero-valued fields of o from defaults, mirroring the
// source SDK's deep_merge_dicts (skip values the caller left unset, recurse
// into nested option groups) but expressed over Go's typed struct fields
// instead of dynamically-keyed dicts.
func deepMerge(o Options, defaults Options) Options {
	if o.APIKey == "" {
		o.APIKey = defaults.APIKey
	}
	if o.APIURL == "" {
		o.APIURL = defaults.APIURL
	}
	if o.Region == "" {
		o.Region = defaults.Region
	}
	if o.HTTPHeaders == nil {
		o.HTTPHeaders = defaults.HTTPHeaders
	}
	if o.HTTPRetry.MaxAttempts == nil {
		o.HTTPRetry.MaxAttempts = defaults.HTTPRetry.MaxAttempts
	}
	if o.HTTPRetry.StatusCodes == nil {
		o.HTTPRetry.StatusCodes = defaults.HTTPRetry.StatusCodes
	}
	if o.HTTPRetry.Delay == nil {
		o.HTTPRetry.Delay = defaults.HTTPRetry.Delay
	}
	if o.HTTPTimeout == 0 {
		o.HTTPTimeout = defaults.HTTPTimeout
	}
	if o.WSRetry.MaxAttemptsPerConnection == nil {
		o.WSRetry.MaxAttemptsPerConnection = defaults.WSRetry.MaxAttemptsPerConnection
	}
	if o.WSRetry.MaxConnections == nil {
		o.WSRetry.MaxConnections = defaults.WSRetry.MaxConnections
	}
	if o.WSRetry.CloseCodes == nil {
		o.WSRetry.CloseCodes = defaults.WSRetry.CloseCodes
	}
	if o.WSRetry.Delay == nil {
		o.WSRetry.Delay = defaults.WSRetry.Delay
	}
	if o.WSTimeout == 0 {
		o.WSTimeout = defaults.WSTimeout
	}
	if o.Logger == nil {
		o.Logger = defaults.Logger
	}
	return o
}
