package services

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"time"
)

// frameRetrier generates one frame image with a bounded retry budget. Frames
// are submitted strictly in index order, never concurrently; the inter-frame
// delay keeps submissions inside the provider's rate limit and the longer
// retry delay backs off after a failure.
type frameRetrier struct {
	logger          outbound.LoggerPort
	images          outbound.ImageGeneratorPort
	maxAttempts     int
	interFrameDelay time.Duration
	retryDelay      time.Duration
}

func NewFrameRetrier(images outbound.ImageGeneratorPort, maxAttempts int,
	interFrameDelay, retryDelay time.Duration, logger outbound.LoggerPort) *frameRetrier {
	return &frameRetrier{
		logger:          logger,
		images:          images,
		maxAttempts:     maxAttempts,
		interFrameDelay: interFrameDelay,
		retryDelay:      retryDelay,
	}
}

// Generate waits before the first attempt on every non-zero index, then
// attempts the frame up to maxAttempts times, waiting retryDelay before each
// retry. It returns the last error once the budget is exhausted.
func (r *frameRetrier) Generate(ctx context.Context, index int, prompt string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		delay := time.Duration(0)
		if attempt > 0 {
			delay = r.retryDelay
		} else if index > 0 {
			delay = r.interFrameDelay
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		image, err := r.images.Generate(ctx, prompt)
		if err == nil {
			return image, nil
		}

		lastErr = err
		r.logger.ErrorWithFields(err, "Frame generation attempt failed", map[string]interface{}{
			"frame":   index,
			"attempt": attempt + 1,
		})
	}

	return nil, lastErr
}
