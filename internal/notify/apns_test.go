package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sideshow/apns2"
)

type fakePusher struct {
	last *apns2.Notification
	res  *apns2.Response
	err  error
}

func (f *fakePusher) PushWithContext(_ apns2.Context, n *apns2.Notification) (*apns2.Response, error) {
	f.last = n
	return f.res, f.err
}

func TestAPNSTransportBuildsNotification(t *testing.T) {
	p := &fakePusher{res: &apns2.Response{StatusCode: 200}}
	tr := &APNSTransport{client: p}
	note := Notification{Title: "Mål för Luleå", Body: "LHF 1 - 0 FBK", Sound: "ping.aiff", Topic: "se.shl.live", Expiry: at}

	resp, err := tr.Send(context.Background(), note, "abcd")
	if err != nil || len(resp.FailedTokens) != 0 {
		t.Fatalf("expected delivery, got %+v err %v", resp, err)
	}
	if p.last.DeviceToken != "abcd" || p.last.Topic != "se.shl.live" || !p.last.Expiration.Equal(at) {
		t.Fatalf("unexpected apns notification %+v", p.last)
	}
	raw, err := json.Marshal(p.last.Payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	for _, want := range []string{"Mål för Luleå", "ping.aiff", "LHF 1 - 0 FBK"} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("expected payload to contain %q, got %s", want, raw)
		}
	}
}

func TestAPNSTransportReportsRejectedToken(t *testing.T) {
	tr := &APNSTransport{client: &fakePusher{res: &apns2.Response{StatusCode: 410, Reason: apns2.ReasonUnregistered}}}
	resp, err := tr.Send(context.Background(), Notification{}, "abcd")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.FailedTokens) != 1 || resp.FailedTokens[0] != "abcd" || !strings.Contains(resp.Reason, "Unregistered") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAPNSTransportWrapsErrors(t *testing.T) {
	boom := errors.New("dial failed")
	tr := &APNSTransport{client: &fakePusher{err: boom}}
	if _, err := tr.Send(context.Background(), Notification{}, "abcd"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	var unset *APNSTransport
	if _, err := unset.Send(context.Background(), Notification{}, "abcd"); err == nil {
		t.Fatalf("expected error from unconfigured transport")
	}
}

func TestNewAPNSTransportRequiresKey(t *testing.T) {
	if _, err := NewAPNSTransport(APNSConfig{KeyPath: t.TempDir() + "/missing.p8"}); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestLogTransport(t *testing.T) {
	resp, err := LogTransport{}.Send(context.Background(), Notification{Title: "x"}, "0123456789abcdef")
	if err != nil || len(resp.FailedTokens) != 0 {
		t.Fatalf("expected log transport to succeed, got %+v err %v", resp, err)
	}
	if got := redact("0123456789abcdef"); got != "0123…cdef" {
		t.Fatalf("unexpected redaction %q", got)
	}
	if got := redact("short"); got != "***" {
		t.Fatalf("unexpected redaction %q", got)
	}
}
