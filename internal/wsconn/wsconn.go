// Package wsconn implements the reconnecting WebSocket transport session:
// connect-with-timeout, close-code classification, backoff retry, and a
// small connecting/open/closing/closed state machine with lifecycle
// callbacks, built on github.com/coder/websocket.
package wsconn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/gladia-io/gladia-go/internal/retry"
)

// ReadyState mirrors the WebSocket readyState values.
type ReadyState int32

const (
	Connecting ReadyState = iota
	Open
	Closing
	Closed
)

func (s ReadyState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// CodeRange re-exports retry.CodeRange so callers don't need to import the
// internal/retry package directly.
type CodeRange = retry.CodeRange

// RetryPolicy configures reconnect behavior.
type RetryPolicy struct {
	// MaxAttemptsPerConnection caps retries within one connection lifecycle.
	// 0 means unlimited.
	MaxAttemptsPerConnection int
	// MaxConnections caps the number of distinct connection lifecycles. 0
	// means unlimited reconnects.
	MaxConnections int
	// CloseCodes lists the remote close codes that trigger a reconnect
	// rather than a terminal close.
	CloseCodes []CodeRange
	Delay      retry.DelayFunc
}

// ConnectionEvent is delivered to OnConnecting/OnOpen.
type ConnectionEvent struct {
	Connection int
	Attempt    int
}

// MessageEvent is delivered to OnMessage.
type MessageEvent struct {
	Data   []byte
	IsText bool
}

// CloseEvent is delivered to OnClose.
type CloseEvent struct {
	Code   int
	Reason string
}

// ErrNotOpen is returned by Send when the session isn't in the Open state.
var ErrNotOpen = errors.New("wsconn: not open")

// Session is a single reconnecting WebSocket channel. Assign the On* callback
// fields before calling Start; mutating them afterwards races with the
// session's internal goroutines.
type Session struct {
	OnConnecting func(ConnectionEvent)
	OnOpen       func(ConnectionEvent)
	OnMessage    func(MessageEvent)
	OnClose      func(CloseEvent)
	OnError      func(error)

	url         string
	retry       RetryPolicy
	openTimeout time.Duration

	mu         sync.Mutex
	state      ReadyState
	connection int
	attempt    int
	conn       *websocket.Conn
	sendMu     sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// New constructs a Session that has not yet begun connecting. Connection
// lifecycles and attempts within Start are numbered from 1.
func New(url string, policy RetryPolicy, openTimeout time.Duration) *Session {
	return &Session{
		url:         url,
		retry:       policy,
		openTimeout: openTimeout,
		state:       Connecting,
		connection:  1,
	}
}

// Start begins the asynchronous connect loop on its own goroutine. Calling
// Start more than once is a no-op.
func (s *Session) Start(ctx context.Context) {
	s.once.Do(func() {
		s.ctx, s.cancel = context.WithCancel(ctx)
		go s.run()
	})
}

// ReadyState returns the current state.
func (s *Session) ReadyState() ReadyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Send writes data on the current connection. It fails immediately with
// ErrNotOpen unless the session is Open.
func (s *Session) Send(ctx context.Context, data []byte, isText bool) error {
	s.mu.Lock()
	state := s.state
	conn := s.conn
	s.mu.Unlock()

	if state != Open || conn == nil {
		return ErrNotOpen
	}

	typ := websocket.MessageBinary
	if isText {
		typ = websocket.MessageText
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	return conn.Write(ctx, typ, data)
}

// Close transitions the session to Closing then Closed. It is idempotent:
// calling it more than once, or concurrently, only fires OnClose once.
func (s *Session) Close(code int, reason string) {
	s.mu.Lock()
	if s.state == Closing || s.state == Closed {
		s.mu.Unlock()
		return
	}
	s.state = Closing
	conn := s.conn
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusCode(code), reason)
	}
	s.finishClose(code, reason)
}

func (s *Session) finishClose(code int, reason string) {
	s.mu.Lock()
	if s.state == Closed {
		s.mu.Unlock()
		return
	}
	s.state = Closed
	onClose := s.OnClose
	s.conn = nil
	s.mu.Unlock()

	if onClose != nil {
		onClose(CloseEvent{Code: code, Reason: reason})
	}

	s.mu.Lock()
	s.OnConnecting = nil
	s.OnOpen = nil
	s.OnMessage = nil
	s.OnClose = nil
	s.OnError = nil
	s.mu.Unlock()
}

func (s *Session) run() {
	for {
		if s.ctx.Err() != nil {
			return
		}

		s.mu.Lock()
		s.attempt++
		s.state = Connecting
		evt := ConnectionEvent{Connection: s.connection, Attempt: s.attempt}
		onConnecting := s.OnConnecting
		s.mu.Unlock()
		if onConnecting != nil {
			onConnecting(evt)
		}

		attemptCtx := s.ctx
		var cancelTimeout context.CancelFunc
		if s.openTimeout > 0 {
			attemptCtx, cancelTimeout = context.WithTimeout(s.ctx, s.openTimeout)
		}
		conn, _, err := websocket.Dial(attemptCtx, s.url, nil)
		timedOut := cancelTimeout != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		if cancelTimeout != nil {
			cancelTimeout()
		}

		if err != nil {
			if s.ctx.Err() != nil {
				// Close() was called while connecting; it already drove the
				// terminal sequence.
				return
			}
			if timedOut {
				s.Close(3008, "WebSocket connection timeout")
				return
			}

			s.mu.Lock()
			attempt := s.attempt
			s.mu.Unlock()
			giveUp := s.retry.MaxAttemptsPerConnection > 0 && attempt >= s.retry.MaxAttemptsPerConnection
			if giveUp {
				s.fireError(fmt.Errorf("WebSocket connection error: %w", err))
				s.Close(1006, "WebSocket connection error")
				return
			}

			delay := time.Duration(0)
			if s.retry.Delay != nil {
				delay = s.retry.Delay(attempt)
			}
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}

		s.mu.Lock()
		s.conn = conn
		s.state = Open
		openEvt := ConnectionEvent{Connection: s.connection, Attempt: s.attempt}
		onOpen := s.OnOpen
		s.mu.Unlock()
		if onOpen != nil {
			onOpen(openEvt)
		}

		code, reason, retryable := s.readLoop(conn)
		if s.ctx.Err() != nil {
			return
		}
		if retryable {
			s.mu.Lock()
			s.connection++
			s.attempt = 0
			s.conn = nil
			s.mu.Unlock()
			continue
		}
		s.Close(code, reason)
		return
	}
}

func (s *Session) readLoop(conn *websocket.Conn) (code int, reason string, retryable bool) {
	for {
		typ, data, err := conn.Read(s.ctx)
		if err != nil {
			if s.ctx.Err() != nil {
				return 0, "", false
			}

			code = 1006
			reason = err.Error()
			var closeErr websocket.CloseError
			if errors.As(err, &closeErr) {
				code = int(closeErr.Code)
				reason = closeErr.Reason
			}

			s.mu.Lock()
			maxConnections := s.retry.MaxConnections
			connection := s.connection
			closeCodes := s.retry.CloseCodes
			s.mu.Unlock()

			if maxConnections > 0 && connection >= maxConnections {
				return code, reason, false
			}
			if retry.MatchesAny(code, closeCodes) {
				return code, reason, true
			}
			return code, reason, false
		}

		s.mu.Lock()
		onMessage := s.OnMessage
		s.mu.Unlock()
		if onMessage != nil {
			onMessage(MessageEvent{Data: data, IsText: typ == websocket.MessageText})
		}
	}
}

func (s *Session) fireError(err error) {
	s.mu.Lock()
	onError := s.OnError
	s.mu.Unlock()
	if onError != nil {
		onError(err)
	}
}
