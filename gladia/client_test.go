package gladia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gladia-io/gladia-go/live"
)

func TestNewClient_RejectsMissingAPIKeyForGladiaHost(t *testing.T) {
	_, err := NewClient(Options{APIURL: "https://api.gladia.io"})
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewClient_AppliesEnvironmentDefaults(t *testing.T) {
	c, err := NewClient(Options{APIURL: "https://example.internal"})
	require.NoError(t, err)
	require.NotNil(t, c.opts.HTTPRetry.MaxAttempts)
	assert.Equal(t, 2, *c.opts.HTTPRetry.MaxAttempts)
	require.NotNil(t, c.opts.WSRetry.MaxAttemptsPerConnection)
	assert.Equal(t, 5, *c.opts.WSRetry.MaxAttemptsPerConnection)
	assert.Equal(t, 10*time.Second, c.opts.HTTPTimeout)
}

func TestNewClient_PreservesExplicitUnlimitedRetryCounts(t *testing.T) {
	c, err := NewClient(Options{
		APIURL: "https://example.internal",
		HTTPRetry: HTTPRetryOptions{
			MaxAttempts: IntPtr(0),
		},
		WSRetry: WSRetryOptions{
			MaxAttemptsPerConnection: IntPtr(0),
			MaxConnections:           IntPtr(0),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, c.opts.HTTPRetry.MaxAttempts)
	assert.Equal(t, 0, *c.opts.HTTPRetry.MaxAttempts)
	require.NotNil(t, c.opts.WSRetry.MaxAttemptsPerConnection)
	assert.Equal(t, 0, *c.opts.WSRetry.MaxAttemptsPerConnection)
	require.NotNil(t, c.opts.WSRetry.MaxConnections)
	assert.Equal(t, 0, *c.opts.WSRetry.MaxConnections)
}

func TestClient_LiveV2ReachesStarted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sess-2","created_at":"2026-07-31T00:00:00Z","url":"ws://127.0.0.1:1/never"}`))
	}))
	defer srv.Close()

	c, err := NewClient(Options{APIURL: srv.URL})
	require.NoError(t, err)

	started := make(chan live.InitResponse, 1)
	session := c.LiveV2(context.Background(), live.InitRequest{})
	session.OnStarted(func(r live.InitResponse) { started <- r })

	select {
	case r := <-started:
		assert.Equal(t, "sess-2", r.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for started")
	}

	session.EndSession()
}
