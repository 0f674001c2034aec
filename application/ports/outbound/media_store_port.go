package outbound

import (
	"context"
	"time"
)

// MediaStorePort is the content-addressed artifact store. Put returns the
// artifact's durable URL; SignedURL returns a time-limited URL external
// providers and the UI can fetch from.
type MediaStorePort interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	SignedURL(key string, ttl time.Duration) (string, error)
}
