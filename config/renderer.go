package config

import (
	"time"
)

type RendererConfig struct {
	ApiUrl          string
	PollInterval    time.Duration
	PollMaxAttempts int
}

func GetRendererConfig() (*RendererConfig, error) {
	apiUrl, err := requireEnv("RENDERER_API_URL")
	if err != nil {
		return nil, err
	}
	pollInterval, err := durationEnv("RENDERER_POLL_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}
	pollMaxAttempts, err := intEnv("RENDERER_POLL_MAX_ATTEMPTS", 90)
	if err != nil {
		return nil, err
	}

	return &RendererConfig{
		ApiUrl:          apiUrl,
		PollInterval:    pollInterval,
		PollMaxAttempts: pollMaxAttempts,
	}, nil
}
