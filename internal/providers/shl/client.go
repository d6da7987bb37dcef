// Package shl implements providers.Feed against the SHL open API.
package shl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Season       int
	Timeout      time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// Client fetches SHL data and maps it to domain models.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	season       int
	httpClient   httpDoer
	logger       *slog.Logger
	now          func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient constructs an SHL client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:      normalizeBaseURL(cfg.BaseURL),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		season:       cfg.Season,
		httpClient:   resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:       cfg.Logger,
		now:          time.Now,
	}
}

// FetchSchedule retrieves every game of the season.
func (c *Client) FetchSchedule(ctx context.Context, season int) ([]games.Game, error) {
	var payload []gameResponse
	if err := c.getJSON(ctx, "schedule", fmt.Sprintf("/seasons/%d/games", season), nil, &payload); err != nil {
		return nil, err
	}
	out := make([]games.Game, 0, len(payload))
	for _, g := range payload {
		if g.GameUUID == "" {
			continue
		}
		out = append(out, mapGame(g))
	}
	return out, nil
}

// FetchSnapshot retrieves the game center state of one game.
func (c *Client) FetchSnapshot(ctx context.Context, gameUUID string, gameID int) (*games.Snapshot, error) {
	query := url.Values{}
	query.Set("game_uuid", gameUUID)

	var payload statsResponse
	if err := c.getJSON(ctx, "snapshot", fmt.Sprintf("/seasons/%d/games/%d", c.season, gameID), query, &payload); err != nil {
		return nil, err
	}
	if payload.GameUUID == "" {
		payload.GameUUID = gameUUID
	}
	if payload.GameID == 0 {
		payload.GameID = gameID
	}
	return mapSnapshot(payload), nil
}

// FetchStandings retrieves the league table.
func (c *Client) FetchStandings(ctx context.Context, season int) ([]games.Standing, error) {
	var payload []standingResponse
	if err := c.getJSON(ctx, "standings", fmt.Sprintf("/seasons/%d/statistics/teams/standings", season), nil, &payload); err != nil {
		return nil, err
	}
	out := make([]games.Standing, 0, len(payload))
	for _, s := range payload {
		out = append(out, mapStanding(s))
	}
	return out, nil
}

// FetchPlayers retrieves every rostered player of the season.
func (c *Client) FetchPlayers(ctx context.Context, season int) ([]players.Player, error) {
	var payload []playerResponse
	if err := c.getJSON(ctx, "players", fmt.Sprintf("/seasons/%d/players", season), nil, &payload); err != nil {
		return nil, err
	}
	out := make([]players.Player, 0, len(payload))
	for _, p := range payload {
		out = append(out, mapPlayer(p, ""))
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dest any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &providers.UpstreamError{Provider: providerName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.resetToken()
	}
	if err := c.checkStatus(op, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &providers.UpstreamError{Provider: providerName, Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func (c *Client) checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	msg := strings.TrimSpace(string(body))
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"), c.now())
		if c.logger != nil {
			c.logger.Warn("shl rate limited",
				slog.String("op", op),
				slog.Duration("retry_after", retryAfter),
			)
		}
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter,
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    msg,
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &providers.UpstreamError{Provider: providerName, Op: op, StatusCode: resp.StatusCode, Err: errors.New(msg)}
}

// accessToken returns a cached client-credentials token, requesting a new one when it is
// missing or about to expire. Without credentials requests are sent unauthenticated.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &providers.UpstreamError{Provider: providerName, Op: "token", Err: err}
	}
	defer resp.Body.Close()

	if err := c.checkStatus("token", resp); err != nil {
		return "", err
	}
	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &providers.UpstreamError{Provider: providerName, Op: "token", Err: fmt.Errorf("decode: %w", err)}
	}
	if payload.AccessToken == "" {
		return "", &providers.UpstreamError{Provider: providerName, Op: "token", Err: errors.New("empty access token")}
	}

	c.token = payload.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(payload.ExpiresIn)*time.Second - tokenExpirySlack)
	return c.token, nil
}

func (c *Client) resetToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

var _ providers.Feed = (*Client)(nil)
