package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gladia-io/gladia-go/internal/httpx"
	"github.com/gladia-io/gladia-go/internal/wsconn"
)

func newFakeWSServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		handler(conn)
	}))
}

func newFakeInitServer(t *testing.T, wsURL string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(InitResponse{
			ID:        "sess-1",
			CreatedAt: "2026-07-31T00:00:00Z",
			URL:       wsURL,
		})
	}))
}

func TestSession_FullLifecycle(t *testing.T) {
	var gotAudio []byte
	wsSrv := newFakeWSServer(t, func(conn *websocket.Conn) {
		ctx := context.Background()
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		gotAudio = append([]byte(nil), data...)

		ack, _ := json.Marshal(AudioChunkAckMessage{
			SessionID:    "sess-1",
			CreatedAt:    "now",
			Acknowledged: true,
			Type:         TypeAudioChunkAck,
			Data:         &AudioChunkAckData{ByteRange: [2]int{0, len(data)}},
		})
		_ = conn.Write(ctx, websocket.MessageText, ack)

		conn.Read(ctx) // stop_recording control frame
		conn.Close(websocket.StatusNormalClosure, "")
	})
	defer wsSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(wsSrv.URL, "http")
	initSrv := newFakeInitServer(t, wsURL)
	defer initSrv.Close()

	client := httpx.New(httpx.Options{BaseURL: initSrv.URL, Timeout: 2 * time.Second})

	started := make(chan InitResponse, 1)
	connected := make(chan ConnectionEvent, 1)
	messages := make(chan WireMessage, 4)
	ended := make(chan EndingEvent, 1)

	s := NewSession(context.Background(), client, InitRequest{}, wsconn.RetryPolicy{}, 0, nil)
	s.OnStarted(func(r InitResponse) { started <- r })
	s.OnConnected(func(e ConnectionEvent) { connected <- e })
	s.OnMessage(func(m WireMessage) { messages <- m })
	s.OnEnded(func(e EndingEvent) { ended <- e })

	select {
	case r := <-started:
		assert.Equal(t, "sess-1", r.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for started")
	}

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connected")
	}

	s.SendAudio([]byte("hello-audio"))

	select {
	case m := <-messages:
		ack, ok := m.(*AudioChunkAckMessage)
		require.True(t, ok)
		assert.True(t, ack.Acknowledged)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ack")
	}

	assert.Equal(t, "hello-audio", string(gotAudio))
	assert.Empty(t, s.sendBuf.unacked())

	s.StopRecording()
	assert.Equal(t, StatusEnding, s.Status())

	select {
	case e := <-ended:
		assert.Equal(t, 1000, e.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ended")
	}
	assert.Equal(t, StatusEnded, s.Status())
}

func TestSession_InitFailureTerminates(t *testing.T) {
	initSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer initSrv.Close()

	client := httpx.New(httpx.Options{
		BaseURL: initSrv.URL,
		Timeout: 2 * time.Second,
		Retry:   httpx.RetryOptions{MaxAttempts: 1},
	})

	errs := make(chan error, 1)
	ended := make(chan EndingEvent, 1)

	s := NewSession(context.Background(), client, InitRequest{}, wsconn.RetryPolicy{}, 0, nil)
	s.OnError(func(err error) { errs <- err })
	s.OnEnded(func(e EndingEvent) { ended <- e })

	select {
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	select {
	case e := <-ended:
		assert.Equal(t, 1006, e.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ended")
	}
	assert.Equal(t, StatusEnded, s.Status())
}

func TestSession_EndSessionIsIdempotent(t *testing.T) {
	wsSrv := newFakeWSServer(t, func(conn *websocket.Conn) {
		conn.Read(context.Background())
	})
	defer wsSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(wsSrv.URL, "http")
	initSrv := newFakeInitServer(t, wsURL)
	defer initSrv.Close()

	client := httpx.New(httpx.Options{BaseURL: initSrv.URL, Timeout: 2 * time.Second})

	connected := make(chan ConnectionEvent, 1)
	endedCount := 0

	s := NewSession(context.Background(), client, InitRequest{}, wsconn.RetryPolicy{}, 0, nil)
	s.OnConnected(func(e ConnectionEvent) { connected <- e })
	s.OnEnded(func(EndingEvent) { endedCount++ })

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connected")
	}

	s.EndSession()
	s.EndSession()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, endedCount)
}

func TestSession_InitTimeoutEmitsTypedError(t *testing.T) {
	initSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer initSrv.Close()

	client := httpx.New(httpx.Options{
		BaseURL: initSrv.URL,
		Timeout: 10 * time.Millisecond,
		Retry:   httpx.RetryOptions{MaxAttempts: 1},
	})

	errs := make(chan error, 1)
	ended := make(chan EndingEvent, 1)

	s := NewSession(context.Background(), client, InitRequest{}, wsconn.RetryPolicy{}, 0, nil)
	s.OnError(func(err error) { errs <- err })
	s.OnEnded(func(e EndingEvent) { ended <- e })

	select {
	case err := <-errs:
		var timeoutErr *TimeoutError
		require.ErrorAs(t, err, &timeoutErr)
		assert.Equal(t, "init", timeoutErr.Phase)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	select {
	case e := <-ended:
		assert.Equal(t, 1006, e.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ended")
	}
}

func TestSession_NonRetryableCloseEmitsTransportError(t *testing.T) {
	wsSrv := newFakeWSServer(t, func(conn *websocket.Conn) {
		_ = conn.Close(websocket.StatusCode(4000), "server done")
	})
	defer wsSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(wsSrv.URL, "http")
	initSrv := newFakeInitServer(t, wsURL)
	defer initSrv.Close()

	client := httpx.New(httpx.Options{BaseURL: initSrv.URL, Timeout: 2 * time.Second})

	errs := make(chan error, 1)
	ended := make(chan EndingEvent, 1)

	s := NewSession(context.Background(), client, InitRequest{}, wsconn.RetryPolicy{}, 0, nil)
	s.OnError(func(err error) { errs <- err })
	s.OnEnded(func(e EndingEvent) { ended <- e })

	select {
	case err := <-errs:
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, 4000, transportErr.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	select {
	case e := <-ended:
		assert.Equal(t, 4000, e.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ended")
	}
}

func TestSession_DialFailureEmitsTransportErrorOnce(t *testing.T) {
	initSrv := newFakeInitServer(t, "ws://127.0.0.1:1/unreachable")
	defer initSrv.Close()

	client := httpx.New(httpx.Options{BaseURL: initSrv.URL, Timeout: 2 * time.Second})

	var errs []error
	errCh := make(chan error, 4)
	ended := make(chan EndingEvent, 1)

	s := NewSession(context.Background(), client, InitRequest{}, wsconn.RetryPolicy{MaxAttemptsPerConnection: 1}, 0, nil)
	s.OnError(func(err error) { errCh <- err })
	s.OnEnded(func(e EndingEvent) { ended <- e })

	select {
	case e := <-ended:
		assert.Equal(t, 1006, e.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ended")
	}

	close(errCh)
	for err := range errCh {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1, "the dial-failure error must not be emitted twice across OnError and OnClose")
	var transportErr *TransportError
	require.True(t, errors.As(errs[0], &transportErr))
	assert.Equal(t, 1006, transportErr.Code)
}
