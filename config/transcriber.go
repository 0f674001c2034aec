package config

import (
	"time"
)

type TranscriberConfig struct {
	ApiUrl          string
	ApiKey          string
	PollInterval    time.Duration
	PollMaxAttempts int
}

func GetTranscriberConfig() (*TranscriberConfig, error) {
	apiUrl, err := requireEnv("TRANSCRIBER_API_URL")
	if err != nil {
		return nil, err
	}
	apiKey, err := requireEnv("TRANSCRIBER_API_KEY")
	if err != nil {
		return nil, err
	}
	pollInterval, err := durationEnv("TRANSCRIBER_POLL_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}
	pollMaxAttempts, err := intEnv("TRANSCRIBER_POLL_MAX_ATTEMPTS", 30)
	if err != nil {
		return nil, err
	}

	return &TranscriberConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		PollInterval:    pollInterval,
		PollMaxAttempts: pollMaxAttempts,
	}, nil
}
