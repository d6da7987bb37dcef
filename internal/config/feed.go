package config

import "time"

// FeedConfig controls how we talk to the SHL feed.
type FeedConfig struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	SocketURL         string
	RequestsPerMinute int
	Timeout           time.Duration
}

func loadFeed() FeedConfig {
	return FeedConfig{
		BaseURL:           envOrDefault(envFeedBaseURL, defaultFeedBaseURL),
		ClientID:          envOrDefault(envFeedClientID, ""),
		ClientSecret:      envOrDefault(envFeedClientSecret, ""),
		SocketURL:         envOrDefault(envFeedSocketURL, ""),
		RequestsPerMinute: intEnvOrDefault(envFeedRPM, defaultFeedRPM),
		Timeout:           durationEnvOrDefault(envFeedTimeout, defaultFeedTimeout),
	}
}
