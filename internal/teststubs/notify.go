package teststubs

import (
	"context"
	"sync"

	"github.com/preston-bernstein/shl-live-service/internal/notify"
)

// SentNotification is one call observed by StubTransport.
type SentNotification struct {
	Note  notify.Notification
	Token string
}

// StubTransport records sends and can fail them per token.
type StubTransport struct {
	mu     sync.Mutex
	sent   []SentNotification
	ErrFor map[string]error
}

func (s *StubTransport) Send(_ context.Context, note notify.Notification, token string) (notify.SendResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, SentNotification{Note: note, Token: token})
	if err := s.ErrFor[token]; err != nil {
		return notify.SendResponse{}, err
	}
	return notify.SendResponse{}, nil
}

// Sent returns a copy of the recorded sends.
func (s *StubTransport) Sent() []SentNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentNotification(nil), s.sent...)
}

// Reset forgets recorded sends.
func (s *StubTransport) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}

// StubSession records the feed-socket lifecycle.
type StubSession struct {
	mu      sync.Mutex
	Opens   int
	Closes  int
	Joined  []string
	OpenErr error
}

func (s *StubSession) Open(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Opens++
	return s.OpenErr
}

func (s *StubSession) Join(_ context.Context, gameUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Joined = append(s.Joined, gameUUID)
	return nil
}

func (s *StubSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closes++
	return nil
}

// Counts returns how many times the session was opened and closed.
func (s *StubSession) Counts() (opens, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Opens, s.Closes
}
