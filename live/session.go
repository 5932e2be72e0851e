package live

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gladia-io/gladia-go/internal/httpx"
	"github.com/gladia-io/gladia-go/internal/wsconn"
)

// Status is the externally observable lifecycle stage of a Session. It moves
// forward, except that a transport reconnect takes it from StatusConnected
// back to StatusConnecting; once StatusEnding is reached it never goes back,
// and it reaches StatusEnded exactly once.
type Status string

const (
	StatusStarting   Status = "starting"
	StatusStarted    Status = "started"
	StatusConnecting Status = "connecting"
	StatusConnected  Status = "connected"
	StatusEnding     Status = "ending"
	StatusEnded      Status = "ended"
)

type closeSpec struct {
	code   int
	reason string
}

// Session is the Live Session: it owns the HTTP init call, the reconnecting
// WebSocket transport, the unacknowledged-audio send buffer, and the typed
// event dispatcher. Construct one with NewSession; it begins the init
// handshake immediately on its own goroutine.
type Session struct {
	mu     sync.Mutex
	status Status

	sessionID    string
	transportURL string

	initReq   InitRequest
	http      *httpx.Client
	wsRetry   wsconn.RetryPolicy
	wsTimeout time.Duration

	sendBuf    *sendBuffer
	dispatcher *dispatcher
	transport  *wsconn.Session

	endingEmitted bool
	endedEmitted  bool

	ctx    context.Context
	cancel context.CancelFunc

	logger *slog.Logger
}

// NewSession allocates a Session and kicks off the init handshake
// asynchronously. client performs the POST /v2/live call with its configured
// retry policy; wsRetry/wsTimeout configure the transport session opened once
// init succeeds.
func NewSession(ctx context.Context, client *httpx.Client, req InitRequest, wsRetry wsconn.RetryPolicy, wsTimeout time.Duration, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if req.MessagesConfig == nil {
		req.MessagesConfig = &MessagesConfig{}
	}
	req.MessagesConfig.ReceiveAcknowledgments = true

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		status:     StatusStarting,
		initReq:    req,
		http:       client,
		wsRetry:    wsRetry,
		wsTimeout:  wsTimeout,
		sendBuf:    newSendBuffer(),
		dispatcher: newDispatcher(logger),
		ctx:        sctx,
		cancel:     cancel,
		logger:     logger,
	}
	go s.initSession()
	return s
}

// Status returns the current lifecycle stage.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SessionID returns the server-assigned session id, empty until StatusStarted.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

func (s *Session) initSession() {
	var resp InitResponse
	err := s.http.PostJSON(s.ctx, "/v2/live", s.initReq, &resp)
	if err != nil {
		if isTimeoutErr(err) {
			err = &TimeoutError{Phase: "init", Timeout: s.http.Timeout().String(), Err: err}
		}
		s.logger.Error("live session init failed", "error", err)
		s.dispatcher.emitError(err)
		s.terminate(1006, "Couldn't start a new session", nil)
		return
	}

	s.mu.Lock()
	if s.endedEmitted {
		s.mu.Unlock()
		return
	}
	s.sessionID = resp.ID
	s.transportURL = resp.URL
	s.status = StatusStarted
	s.mu.Unlock()

	s.logger.Info("live session started", "session_id", resp.ID)
	s.dispatcher.emitStarted(resp)

	if s.initReq.MessagesConfig.ReceiveLifecycleEvents {
		s.dispatcher.emitMessage(&StartSessionMessage{
			SessionID: resp.ID,
			CreatedAt: resp.CreatedAt,
			Type:      TypeStartSession,
		})
	}

	s.connectTransport()
}

func (s *Session) connectTransport() {
	s.mu.Lock()
	url := s.transportURL
	sessionID := s.sessionID
	s.mu.Unlock()

	// transportErrorEmitted is written from wsconn's run() goroutine, but
	// OnClose can also run on the goroutine that calls EndSession (which
	// closes the transport), so the flag is atomic.
	var transportErrorEmitted atomic.Bool

	t := wsconn.New(url, s.wsRetry, s.wsTimeout)
	t.OnConnecting = func(e wsconn.ConnectionEvent) {
		s.mu.Lock()
		if s.status != StatusEnding && s.status != StatusEnded {
			s.status = StatusConnecting
		}
		s.mu.Unlock()
		transportErrorEmitted.Store(false)
		s.logger.Info("live transport connecting", "session_id", sessionID, "connection", e.Connection, "attempt", e.Attempt)
		s.dispatcher.emitConnecting(ConnectionEvent{Connection: e.Connection, Attempt: e.Attempt})
	}
	t.OnOpen = func(e wsconn.ConnectionEvent) {
		s.mu.Lock()
		if s.status != StatusEnding && s.status != StatusEnded {
			s.status = StatusConnected
		}
		unacked := append([]byte(nil), s.sendBuf.unacked()...)
		s.mu.Unlock()
		s.logger.Info("live transport connected", "session_id", sessionID, "connection", e.Connection, "attempt", e.Attempt)
		s.dispatcher.emitConnected(ConnectionEvent{Connection: e.Connection, Attempt: e.Attempt})
		if len(unacked) > 0 {
			_ = t.Send(s.ctx, unacked, false)
		}
	}
	t.OnMessage = func(e wsconn.MessageEvent) {
		s.handleFrame(e.Data)
	}
	t.OnError = func(err error) {
		transportErrorEmitted.Store(true)
		wrapped := &TransportError{Code: 1006, Reason: err.Error(), Err: err}
		s.logger.Error("live transport error", "session_id", sessionID, "error", wrapped)
		s.dispatcher.emitError(wrapped)
	}
	t.OnClose = func(e wsconn.CloseEvent) {
		switch {
		case e.Code == 3008:
			timeoutErr := &TimeoutError{Phase: "handshake", Timeout: s.wsTimeout.String()}
			s.logger.Error("live transport handshake timed out", "session_id", sessionID, "error", timeoutErr)
		case !transportErrorEmitted.Load():
			wrapped := &TransportError{Code: e.Code, Reason: e.Reason}
			s.logger.Error("live transport closed", "session_id", sessionID, "code", e.Code, "reason", e.Reason)
			s.dispatcher.emitError(wrapped)
		default:
			s.logger.Info("live transport closed", "session_id", sessionID, "code", e.Code, "reason", e.Reason)
		}
		s.terminate(e.Code, e.Reason, nil)
	}

	s.mu.Lock()
	s.transport = t
	s.mu.Unlock()

	t.Start(s.ctx)
}

func (s *Session) handleFrame(data []byte) {
	msg, err := ParseMessage(data)
	if err != nil {
		s.dispatcher.emitError(err)
		return
	}

	if ack, ok := msg.(*AudioChunkAckMessage); ok && ack.Acknowledged && ack.Data != nil {
		s.mu.Lock()
		s.sendBuf.ack(int64(ack.Data.ByteRange[1]))
		s.mu.Unlock()
	}

	s.dispatcher.emitMessage(msg)
}

// SendAudio appends data to the unacknowledged send buffer and, if the
// transport is open, flushes the buffer's entire unacknowledged contents
// (not just the new slice), so a reconnect can resume cleanly without extra
// bookkeeping. Calls after StopRecording/EndSession are silently dropped.
func (s *Session) SendAudio(data []byte) {
	s.mu.Lock()
	if s.status == StatusEnding || s.status == StatusEnded {
		s.mu.Unlock()
		return
	}
	unacked := s.sendBuf.append(data)
	transport := s.transport
	open := transport != nil && transport.ReadyState() == wsconn.Open
	s.mu.Unlock()

	if open {
		_ = transport.Send(s.ctx, unacked, false)
	}
}

// StopRecording half-closes the stream: it tells the server to stop
// accepting audio while leaving the session (and any post-processing
// addons) running. It is a no-op if the session is already ending or ended.
func (s *Session) StopRecording() {
	s.mu.Lock()
	if s.status == StatusEnding || s.status == StatusEnded {
		s.mu.Unlock()
		return
	}
	s.status = StatusEnding
	alreadyEmitted := s.endingEmitted
	s.endingEmitted = true
	transport := s.transport
	s.mu.Unlock()

	if !alreadyEmitted {
		s.dispatcher.emitEnding(EndingEvent{Code: 1000})
	}
	if transport != nil {
		_ = transport.Send(s.ctx, encodeStopRecording(), true)
	}
}

// EndSession drives the unconditional terminal sequence: it closes the
// transport, cancels all outstanding asynchronous work, clears the send
// buffer, and removes all listeners. Safe to call more than once; only the
// first call has any effect.
func (s *Session) EndSession() {
	s.terminate(1000, "Session ended by user", &closeSpec{code: 1001, reason: "Aborted"})
}

// terminate drives the ending->ended sequence exactly once. emitCode/Reason
// are what listeners observe; transportClose, if non-nil, additionally closes
// the transport with its own code/reason (used when the caller, not the
// server, initiated the close).
func (s *Session) terminate(emitCode int, emitReason string, transportClose *closeSpec) {
	s.mu.Lock()
	if s.endedEmitted {
		s.mu.Unlock()
		return
	}
	sessionID := s.sessionID
	if !s.endingEmitted {
		s.endingEmitted = true
		s.status = StatusEnding
		s.mu.Unlock()
		s.logger.Info("live session ending", "session_id", sessionID, "code", emitCode, "reason", emitReason)
		s.dispatcher.emitEnding(EndingEvent{Code: emitCode, Reason: emitReason})
		s.mu.Lock()
	}
	s.endedEmitted = true
	s.status = StatusEnded
	transport := s.transport
	s.mu.Unlock()

	s.logger.Info("live session ended", "session_id", sessionID, "code", emitCode, "reason", emitReason)
	s.dispatcher.emitEnded(EndingEvent{Code: emitCode, Reason: emitReason})

	if transportClose != nil && transport != nil {
		transport.Close(transportClose.code, transportClose.reason)
	}

	s.cancel()

	s.mu.Lock()
	s.sendBuf.reset()
	s.mu.Unlock()

	s.dispatcher.removeAll("")
}

// On/Once/Off register and remove listeners per event. Each event name has
// its own typed pair rather than a single On(name string, cb any) so that
// listener payloads stay compile-time typed.

func (s *Session) OnStarted(cb func(InitResponse))   { s.dispatcher.started.on(cb, false) }
func (s *Session) OnceStarted(cb func(InitResponse)) { s.dispatcher.started.on(cb, true) }
func (s *Session) OffStarted(cb func(InitResponse))  { s.dispatcher.started.off(cb) }

func (s *Session) OnConnecting(cb func(ConnectionEvent))   { s.dispatcher.connecting.on(cb, false) }
func (s *Session) OnceConnecting(cb func(ConnectionEvent)) { s.dispatcher.connecting.on(cb, true) }
func (s *Session) OffConnecting(cb func(ConnectionEvent))  { s.dispatcher.connecting.off(cb) }

func (s *Session) OnConnected(cb func(ConnectionEvent))   { s.dispatcher.connected.on(cb, false) }
func (s *Session) OnceConnected(cb func(ConnectionEvent)) { s.dispatcher.connected.on(cb, true) }
func (s *Session) OffConnected(cb func(ConnectionEvent))  { s.dispatcher.connected.off(cb) }

func (s *Session) OnEnding(cb func(EndingEvent))   { s.dispatcher.ending.on(cb, false) }
func (s *Session) OnceEnding(cb func(EndingEvent)) { s.dispatcher.ending.on(cb, true) }
func (s *Session) OffEnding(cb func(EndingEvent))  { s.dispatcher.ending.off(cb) }

func (s *Session) OnEnded(cb func(EndingEvent))   { s.dispatcher.ended.on(cb, false) }
func (s *Session) OnceEnded(cb func(EndingEvent)) { s.dispatcher.ended.on(cb, true) }
func (s *Session) OffEnded(cb func(EndingEvent))  { s.dispatcher.ended.off(cb) }

func (s *Session) OnMessage(cb func(WireMessage))   { s.dispatcher.message.on(cb, false) }
func (s *Session) OnceMessage(cb func(WireMessage)) { s.dispatcher.message.on(cb, true) }
func (s *Session) OffMessage(cb func(WireMessage))  { s.dispatcher.message.off(cb) }

func (s *Session) OnError(cb func(error))   { s.dispatcher.errored.on(cb, false) }
func (s *Session) OnceError(cb func(error)) { s.dispatcher.errored.on(cb, true) }
func (s *Session) OffError(cb func(error))  { s.dispatcher.errored.off(cb) }

// RemoveAllListeners removes every listener registered for event. An empty
// event name removes listeners for every event.
func (s *Session) RemoveAllListeners(event string) {
	s.dispatcher.removeAll(event)
}
