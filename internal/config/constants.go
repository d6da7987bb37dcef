package config

import "time"

const (
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envSeason       = "SEASON"
	envLiveWindow   = "LIVE_WINDOW"
	envLiveInterval = "LIVE_POLL_INTERVAL"
	envIdleInterval = "IDLE_POLL_INTERVAL"
	envErrorBackoff = "ERROR_POLL_INTERVAL"

	envFeedBaseURL      = "SHL_BASE_URL"
	envFeedClientID     = "SHL_CLIENT_ID"
	envFeedClientSecret = "SHL_CLIENT_SECRET"
	envFeedSocketURL    = "SHL_SOCKET_URL"
	envFeedRPM          = "SHL_REQUESTS_PER_MINUTE"
	envFeedTimeout      = "SHL_TIMEOUT"

	envStoreBackend  = "STORE_BACKEND"
	envStorePath     = "STORE_PATH"
	envStorePrefix   = "STORE_KEY_PREFIX"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"
	envMongoURI      = "MONGO_URI"
	envMongoDatabase = "MONGO_DATABASE"
	envPostgresURL   = "DATABASE_URL"

	envApnKeyPath    = "APN_KEY_PATH"
	envApnKeyID      = "APN_KEY_ID"
	envApnTeamID     = "APN_TEAM_ID"
	envApnTopic      = "APN_TOPIC"
	envApnProduction = "APN_PRODUCTION"
	envMuted         = "NOTIFICATIONS_MUTED"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envOtelInterval = "OTEL_METRIC_EXPORT_INTERVAL"

	envAdminToken  = "ADMIN_TOKEN"
	envCORSOrigins = "CORS_ALLOW_ORIGINS"

	defaultPort     = "8080"
	defaultProvider = "fixture"
	defaultSeason   = 2024

	defaultLiveWindow   = 5 * time.Minute
	defaultLiveInterval = 3 * time.Second
	defaultIdleInterval = 60 * time.Second
	defaultErrorBackoff = 60 * time.Second

	defaultFeedBaseURL = "https://openapi.shl.se"
	// Sustained budget for the open API.
	defaultFeedRPM     = 120
	defaultFeedTimeout = 10 * time.Second

	defaultStoreBackend  = "file"
	defaultStorePath     = "data"
	defaultStorePrefix   = "shl"
	defaultRedisAddr     = "localhost:6379"
	defaultMongoDatabase = "shl"

	defaultApnTopic    = "se.shl.live"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "shl-live-service"
	defaultPushInterval = 15 * time.Second
)
