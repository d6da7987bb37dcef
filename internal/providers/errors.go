package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderUnavailable is returned when a decorator has no feed to delegate to.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError is a 429-style refusal from the feed.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode == 0 {
		return msg
	}
	return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
}

// UpstreamError wraps any other failed feed call. StatusCode is zero for transport
// and decode failures.
type UpstreamError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Temporary reports whether a retry may succeed. 4xx responses are permanent except
// request timeouts and rate limits.
func (e *UpstreamError) Temporary() bool {
	switch {
	case e.StatusCode == 0, e.StatusCode >= http.StatusInternalServerError:
		return true
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	}
	return false
}

func asError[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}

func AsRateLimitError(err error) (*RateLimitError, bool) { return asError[*RateLimitError](err) }
func AsUpstreamError(err error) (*UpstreamError, bool)   { return asError[*UpstreamError](err) }

// Upstream tags err as a failed call to op on provider, leaving already tagged errors as is.
func Upstream(provider, op string, err error) error {
	if err == nil || IsUpstream(err) {
		return err
	}
	return &UpstreamError{Provider: provider, Op: op, Err: err}
}

// IsUpstream separates feed failures from local store failures.
func IsUpstream(err error) bool {
	if _, ok := AsUpstreamError(err); ok {
		return true
	}
	_, ok := AsRateLimitError(err)
	return ok
}
