// Package feedsocket manages the streaming connection to the feed that is held open while
// games are live.
package feedsocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/shl-live-service/internal/logging"
)

// ErrNotOpen is returned by Join when no connection is open.
var ErrNotOpen = errors.New("feed socket not open")

const writeTimeout = 5 * time.Second

// Session is the live-feed connection lifecycle driven by the poller: opened when the first
// game goes live, joined once per game, closed when the last game ends.
type Session interface {
	Open(ctx context.Context) error
	Join(ctx context.Context, gameUUID string) error
	Close() error
}

// Noop is a Session that does nothing, used when no socket URL is configured.
type Noop struct{}

func (Noop) Open(context.Context) error         { return nil }
func (Noop) Join(context.Context, string) error { return nil }
func (Noop) Close() error                       { return nil }

type joinMessage struct {
	Action   string `json:"action"`
	GameUUID string `json:"game_uuid"`
}

// WebsocketSession keeps one websocket to the feed. Incoming frames are drained and logged at
// debug level; game state is still taken from polled snapshots.
type WebsocketSession struct {
	url    string
	dialer *websocket.Dialer
	logger *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

// NewWebsocketSession builds a session for url. A nil dialer uses websocket.DefaultDialer.
func NewWebsocketSession(url string, dialer *websocket.Dialer, logger *slog.Logger) *WebsocketSession {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &WebsocketSession{url: url, dialer: dialer, logger: logger}
}

// Open dials the feed. Opening an already open session is a no-op.
func (s *WebsocketSession) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return nil
	}
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial feed socket: %w", err)
	}
	s.conn = conn
	s.done = make(chan struct{})
	go s.drain(conn, s.done)
	logging.Info(s.logger, "feed socket opened", slog.String("url", s.url))
	return nil
}

// Join subscribes the open connection to a game.
func (s *WebsocketSession) Join(_ context.Context, gameUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ErrNotOpen
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(joinMessage{Action: "join", GameUUID: gameUUID}); err != nil {
		return fmt.Errorf("join %s: %w", gameUUID, err)
	}
	logging.Debug(s.logger, "feed socket joined", slog.String(logging.FieldGameUUID, gameUUID))
	return nil
}

// Close sends a close frame and releases the connection. Closing a closed session is a no-op.
func (s *WebsocketSession) Close() error {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.conn, s.done = nil, nil
	s.mu.Unlock()
	if conn == nil {
		return nil
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	err := conn.Close()
	<-done
	logging.Info(s.logger, "feed socket closed")
	return err
}

// IsOpen reports whether a connection is held.
func (s *WebsocketSession) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

func (s *WebsocketSession) drain(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		logging.Debug(s.logger, "feed socket message", slog.Int("bytes", len(data)))
	}
}
