package outbound

import "context"

// Transcript carries both the plain transcript text and the timestamp-tagged
// caption markup the rendering engine consumes.
type Transcript struct {
	Text   string
	Markup string
}

// TranscriberPort submits an externally reachable audio URL for
// transcription and waits for the result.
type TranscriberPort interface {
	Transcribe(ctx context.Context, audioURL string) (*Transcript, error)
}
