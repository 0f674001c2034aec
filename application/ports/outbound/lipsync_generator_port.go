package outbound

import "context"

type GenerateLipSyncParams struct {
	AudioURL       string
	AvatarImageURL string
}

// LipSyncGeneratorPort renders a talking-head video for the given audio and
// avatar. Render time dominates total job latency, so implementations poll on
// a long interval with a large attempt budget.
type LipSyncGeneratorPort interface {
	Generate(ctx context.Context, params GenerateLipSyncParams) ([]byte, error)
}
