package services

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// RunAudio narrates the approved script with the character's voice.
func (s *pipelineStages) RunAudio(ctx context.Context, req *domain.VideoRequest) error {
	profile, err := s.characterProfile(req)
	if err != nil {
		return err
	}

	audio, err := s.speech.Synthesize(ctx, outbound.SynthesizeSpeechParams{
		Text:    req.Script,
		VoiceID: profile.VoiceID,
	})
	if err != nil {
		return err
	}

	key := req.AudioKey()
	if _, err := s.media.Put(ctx, key, audio, "audio/mpeg"); err != nil {
		return err
	}

	req.AudioArtifactKey = key
	req.Status = domain.StatusAudioGenerated
	return s.store.Save(ctx, req, domain.StatusScriptApproved)
}
