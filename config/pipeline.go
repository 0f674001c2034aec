package config

import (
	"time"
)

// PipelineConfig holds the frame-stage retry policy. The retry delay is
// deliberately longer than the inter-frame delay: a failed submission usually
// means the provider is throttling.
type PipelineConfig struct {
	FrameMaxAttempts int
	InterFrameDelay  time.Duration
	FrameRetryDelay  time.Duration
}

func GetPipelineConfig() (*PipelineConfig, error) {
	frameMaxAttempts, err := intEnv("FRAME_MAX_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}
	interFrameDelay, err := durationEnv("INTER_FRAME_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}
	frameRetryDelay, err := durationEnv("FRAME_RETRY_DELAY", 5*time.Second)
	if err != nil {
		return nil, err
	}

	return &PipelineConfig{
		FrameMaxAttempts: frameMaxAttempts,
		InterFrameDelay:  interFrameDelay,
		FrameRetryDelay:  frameRetryDelay,
	}, nil
}
