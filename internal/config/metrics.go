package config

import "time"

// MetricsConfig covers the Prometheus scrape listener and optional OTLP push.
// OTLP is off while OTLPEndpoint is empty.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
	PushInterval time.Duration
}

func loadMetrics() MetricsConfig {
	cfg := MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OTLPEndpoint: envOrDefault(envOtelEndpoint, ""),
		PushInterval: durationEnvOrDefault(envOtelInterval, defaultPushInterval),
	}
	if cfg.OTLPEndpoint != "" {
		cfg.OTLPInsecure = boolEnvOrDefault(envOtelInsecure, true)
	}
	return cfg
}
