package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gladia-io/gladia-go/internal/retry"
)

type echoBody struct {
	Name string `json:"name"`
}

func TestPostJSON_SuccessDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Timeout: time.Second})

	var out echoBody
	err := c.PostJSON(context.Background(), "/v2/live", echoBody{Name: "req"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
}

func TestPostJSON_RetriesOnMatchedStatusThenSucceeds(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	c := New(Options{
		BaseURL: srv.URL,
		Timeout: time.Second,
		Retry: RetryOptions{
			MaxAttempts: 5,
			StatusCodes: []retry.CodeRange{{Low: 500, High: 599}},
			Delay:       func(int) time.Duration { return time.Millisecond },
		},
	})

	var out echoBody
	err := c.PostJSON(context.Background(), "/v2/live", echoBody{}, &out)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestPostJSON_ReturnsErrorOnUnmatchedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"nope"}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Timeout: time.Second})

	err := c.PostJSON(context.Background(), "/v2/live", echoBody{}, nil)
	require.Error(t, err)

	var httpErr *Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}

func TestPostJSON_GivesUpAfterMaxAttempts(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Options{
		BaseURL: srv.URL,
		Timeout: time.Second,
		Retry: RetryOptions{
			MaxAttempts: 2,
			StatusCodes: []retry.CodeRange{{Low: 500, High: 599}},
			Delay:       func(int) time.Duration { return time.Millisecond },
		},
	})

	err := c.PostJSON(context.Background(), "/v2/live", echoBody{}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestPostJSON_SendsConfiguredHeaders(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-GLADIA-KEY")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("X-GLADIA-KEY", "secret")
	c := New(Options{BaseURL: srv.URL, Headers: headers, Timeout: time.Second})

	err := c.PostJSON(context.Background(), "/v2/live", echoBody{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
}
