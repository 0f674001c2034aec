package config

import (
	"time"
)

type DaLLeConfig struct {
	ApiUrl          string
	ApiKey          string
	Size            string
	Model           string
	PollInterval    time.Duration
	PollMaxAttempts int
}

func GetDaLLeConfig() (*DaLLeConfig, error) {
	apiUrl, err := requireEnv("DALLE_API_URL")
	if err != nil {
		return nil, err
	}
	apiKey, err := requireEnv("DALLE_API_KEY")
	if err != nil {
		return nil, err
	}
	size, err := requireEnv("DALLE_SIZE")
	if err != nil {
		return nil, err
	}
	model, err := requireEnv("DALLE_MODEL")
	if err != nil {
		return nil, err
	}
	pollInterval, err := durationEnv("DALLE_POLL_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}
	pollMaxAttempts, err := intEnv("DALLE_POLL_MAX_ATTEMPTS", 30)
	if err != nil {
		return nil, err
	}

	return &DaLLeConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		Size:            size,
		Model:           model,
		PollInterval:    pollInterval,
		PollMaxAttempts: pollMaxAttempts,
	}, nil
}
