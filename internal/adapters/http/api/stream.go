package api

import (
	"context"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/pkg/logger"
)

const (
	defaultStreamBuffer = 64
	streamWriteWait     = 5 * time.Second
	streamPongWait      = 60 * time.Second
	streamPingPeriod    = streamPongWait * 9 / 10
)

// StreamHandler pushes every recognized gesture to websocket clients.
type StreamHandler struct {
	deps     StreamDependencies
	upgrader websocket.Upgrader
	buffer   int
	log      logger.Logger
}

// StreamOption configures the StreamHandler.
type StreamOption func(*StreamHandler)

// WithStreamBuffer sets how many events may wait per client before new
// ones are dropped for that client.
func WithStreamBuffer(n int) StreamOption {
	return func(h *StreamHandler) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithAnyOrigin accepts cross-origin websocket clients.
func WithAnyOrigin() StreamOption {
	return func(h *StreamHandler) {
		h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
}

// WithStreamLogger sets the logger.
func WithStreamLogger(l logger.Logger) StreamOption {
	return func(h *StreamHandler) {
		if l != nil {
			h.log = l
		}
	}
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(deps StreamDependencies, opts ...StreamOption) *StreamHandler {
	h := &StreamHandler{
		deps: deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     isSameOrigin,
		},
		buffer: defaultStreamBuffer,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleStream handles GET /gestures/stream. Each gesture is sent as one
// JSON text message. A slow client loses events rather than delaying
// recognition.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan model.GestureEvent, h.buffer)
	var dropped atomic.Uint64
	sub := h.deps.Subscribe(func(ev model.GestureEvent) {
		select {
		case events <- ev:
		default:
			dropped.Add(1)
		}
	})
	defer sub.Unsubscribe()

	h.log.Debug(ctx, "stream client connected", logger.String("remote", r.RemoteAddr))
	go h.readLoop(conn, cancel)

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			h.log.Debug(ctx, "stream client gone", logger.Int("dropped", int(dropped.Load())))
			return
		case ev := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				h.log.Debug(ctx, "stream write failed", logger.Error(err))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

// readLoop discards client messages and cancels once the peer goes away.
func (h *StreamHandler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
