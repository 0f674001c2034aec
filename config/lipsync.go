package config

import (
	"time"
)

type LipSyncConfig struct {
	ApiUrl          string
	ApiKey          string
	PollInterval    time.Duration
	PollMaxAttempts int
}

func GetLipSyncConfig() (*LipSyncConfig, error) {
	apiUrl, err := requireEnv("LIPSYNC_API_URL")
	if err != nil {
		return nil, err
	}
	apiKey, err := requireEnv("LIPSYNC_API_KEY")
	if err != nil {
		return nil, err
	}
	// Lip-sync renders take tens of minutes, so the budget here dominates
	// total job latency.
	pollInterval, err := durationEnv("LIPSYNC_POLL_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}
	pollMaxAttempts, err := intEnv("LIPSYNC_POLL_MAX_ATTEMPTS", 180)
	if err != nil {
		return nil, err
	}

	return &LipSyncConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		PollInterval:    pollInterval,
		PollMaxAttempts: pollMaxAttempts,
	}, nil
}
