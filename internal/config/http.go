package config

// HTTPConfig controls the public API surface.
type HTTPConfig struct {
	// AdminToken guards /admin routes; empty disables them.
	AdminToken  string
	CORSOrigins []string
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		AdminToken:  envOrDefault(envAdminToken, ""),
		CORSOrigins: listEnvOrDefault(envCORSOrigins, []string{"*"}),
	}
}
