package config

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	Backend       string // file | memory | redis | mongo | postgres
	Path          string
	KeyPrefix     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDatabase string
	PostgresURL   string
}

func loadStore() StoreConfig {
	return StoreConfig{
		Backend:       envOrDefault(envStoreBackend, defaultStoreBackend),
		Path:          envOrDefault(envStorePath, defaultStorePath),
		KeyPrefix:     envOrDefault(envStorePrefix, defaultStorePrefix),
		RedisAddr:     envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisPassword: envOrDefault(envRedisPassword, ""),
		RedisDB:       intEnvOrDefault(envRedisDB, 0),
		MongoURI:      envOrDefault(envMongoURI, ""),
		MongoDatabase: envOrDefault(envMongoDatabase, defaultMongoDatabase),
		PostgresURL:   envOrDefault(envPostgresURL, ""),
	}
}
