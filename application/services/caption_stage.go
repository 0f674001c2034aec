package services

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// RunCaptions transcribes the stored audio artifact. The transcriber fetches
// the audio itself, so it gets a signed URL rather than the bytes.
func (s *pipelineStages) RunCaptions(ctx context.Context, req *domain.VideoRequest) error {
	audioURL, err := s.artifactURL(req.AudioArtifactKey)
	if err != nil {
		return err
	}

	transcript, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return err
	}

	key := req.CaptionsKey()
	if _, err := s.media.Put(ctx, key, []byte(transcript.Markup), "application/x-subrip"); err != nil {
		return err
	}

	req.CaptionsText = transcript.Text
	req.CaptionsArtifactKey = key
	req.Status = domain.StatusCaptionsGenerated
	return s.store.Save(ctx, req, domain.StatusAudioGenerated)
}
