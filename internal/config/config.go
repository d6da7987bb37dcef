package config

// Config holds runtime configuration for the service.
type Config struct {
	Port      string
	Provider  string
	Season    int
	Scheduler SchedulerConfig
	Feed      FeedConfig
	Store     StoreConfig
	Push      PushConfig
	Metrics   MetricsConfig
	HTTP      HTTPConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:      envOrDefault(envPort, defaultPort),
		Provider:  envOrDefault(envProvider, defaultProvider),
		Season:    intEnvOrDefault(envSeason, defaultSeason),
		Scheduler: loadScheduler(),
		Feed:      loadFeed(),
		Store:     loadStore(),
		Push:      loadPush(),
		Metrics:   loadMetrics(),
		HTTP:      loadHTTP(),
	}
}
