package outbound

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// RenderRequest carries the durably stored, correctly ordered inputs the
// external rendering engine needs to compose the final video at OutputKey.
type RenderRequest struct {
	RequestID  string
	OutputKey  string
	LipSyncURL string
	AudioURL   string
	FrameURLs  []string
	Captions   []domain.Caption
}

type RendererPort interface {
	Render(ctx context.Context, req RenderRequest) error
}
