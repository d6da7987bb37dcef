package shl

import "time"

const (
	providerName       = "shl"
	defaultBaseURL     = "https://openapi.shl.se"
	defaultHTTPTimeout = 10 * time.Second
	tokenPath          = "/oauth2/token"
	tokenExpirySlack   = 30 * time.Second
	errorBodyLimit     = 512
)
