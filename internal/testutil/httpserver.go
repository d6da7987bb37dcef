package testutil

import (
	"context"
	"net/http"
	"sync"
)

// FakeHTTPServer stands in for a listening server. ListenAndServe returns ListenErr
// immediately. When Hold is non-nil, Shutdown waits for it to close or for ctx to end.
type FakeHTTPServer struct {
	Address   string
	Mux       http.Handler
	ListenErr error
	Hold      chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

func (f *FakeHTTPServer) ListenAndServe() error {
	f.mu.Lock()
	f.listens++
	f.mu.Unlock()
	return f.ListenErr
}

func (f *FakeHTTPServer) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	f.shutdowns++
	f.mu.Unlock()
	if f.Hold == nil {
		return nil
	}
	select {
	case <-f.Hold:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FakeHTTPServer) Addr() string {
	if f.Address == "" {
		return ":0"
	}
	return f.Address
}

func (f *FakeHTTPServer) Handler() http.Handler {
	if f.Mux == nil {
		return http.NotFoundHandler()
	}
	return f.Mux
}

// Calls reports how often ListenAndServe and Shutdown ran.
func (f *FakeHTTPServer) Calls() (listens, shutdowns int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listens, f.shutdowns
}
