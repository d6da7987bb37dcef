package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// APNSConfig holds the token-based credentials of an APNs client.
type APNSConfig struct {
	KeyPath    string
	KeyID      string
	TeamID     string
	Production bool
}

type pusher interface {
	PushWithContext(ctx apns2.Context, n *apns2.Notification) (*apns2.Response, error)
}

// APNSTransport sends notifications through Apple Push Notification service. One transport
// holds one HTTP/2 connection pool and is shared by every dispatch.
type APNSTransport struct {
	client pusher
}

// NewAPNSTransport loads the .p8 signing key and builds a token-authenticated client.
func NewAPNSTransport(cfg APNSConfig) (*APNSTransport, error) {
	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("load apns key: %w", err)
	}
	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	return &APNSTransport{client: client}, nil
}

func (t *APNSTransport) Send(ctx context.Context, note Notification, deviceToken string) (SendResponse, error) {
	if t == nil || t.client == nil {
		return SendResponse{}, errors.New("apns transport not configured")
	}
	n := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       note.Topic,
		Expiration:  note.Expiry,
		Payload: payload.NewPayload().
			AlertTitle(note.Title).
			AlertBody(note.Body).
			Sound(note.Sound),
	}
	res, err := t.client.PushWithContext(ctx, n)
	if err != nil {
		return SendResponse{}, fmt.Errorf("apns push: %w", err)
	}
	if !res.Sent() {
		return SendResponse{FailedTokens: []string{deviceToken}, Reason: fmt.Sprintf("%d %s", res.StatusCode, res.Reason)}, nil
	}
	return SendResponse{}, nil
}
