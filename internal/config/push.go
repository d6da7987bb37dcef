package config

// PushConfig controls the APNs transport and the global mute switch.
type PushConfig struct {
	KeyPath    string
	KeyID      string
	TeamID     string
	Topic      string
	Production bool
	Muted      bool
}

// Enabled reports whether enough credentials are present to build an APNs client.
func (p PushConfig) Enabled() bool {
	return p.KeyPath != "" && p.KeyID != "" && p.TeamID != ""
}

func loadPush() PushConfig {
	return PushConfig{
		KeyPath:    envOrDefault(envApnKeyPath, ""),
		KeyID:      envOrDefault(envApnKeyID, ""),
		TeamID:     envOrDefault(envApnTeamID, ""),
		Topic:      envOrDefault(envApnTopic, defaultApnTopic),
		Production: boolEnvOrDefault(envApnProduction, false),
		Muted:      boolEnvOrDefault(envMuted, false),
	}
}
