package config

import "time"

// SchedulerConfig controls the live polling cadence.
type SchedulerConfig struct {
	LiveWindow    time.Duration // look-ahead before a scheduled start
	LiveInterval  time.Duration // delay while games are tracked
	IdleInterval  time.Duration // delay while nothing is tracked
	ErrorInterval time.Duration // delay after an errored tick
}

func loadScheduler() SchedulerConfig {
	return SchedulerConfig{
		LiveWindow:    durationEnvOrDefault(envLiveWindow, defaultLiveWindow),
		LiveInterval:  durationEnvOrDefault(envLiveInterval, defaultLiveInterval),
		IdleInterval:  durationEnvOrDefault(envIdleInterval, defaultIdleInterval),
		ErrorInterval: durationEnvOrDefault(envErrorBackoff, defaultErrorBackoff),
	}
}
