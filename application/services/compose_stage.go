package services

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// RunCompose hands the rendering engine everything it needs to produce the
// final video: the lip-sync video, the ordered frames, the audio and the
// parsed captions. The job is already completed when this runs; a failure
// here is recorded in ComposeState, never fatal.
func (s *pipelineStages) RunCompose(ctx context.Context, req *domain.VideoRequest) error {
	renderReq, err := s.buildRenderRequest(ctx, req)
	if err != nil {
		return s.recordComposeOutcome(ctx, req, err)
	}

	err = s.renderer.Render(ctx, *renderReq)
	return s.recordComposeOutcome(ctx, req, err)
}

func (s *pipelineStages) buildRenderRequest(ctx context.Context, req *domain.VideoRequest) (*outbound.RenderRequest, error) {
	markup, err := s.media.Get(ctx, req.CaptionsArtifactKey)
	if err != nil {
		return nil, err
	}
	captions, err := domain.ParseCaptions(string(markup))
	if err != nil {
		return nil, err
	}

	lipSyncURL, err := s.artifactURL(req.LipSyncArtifactKey)
	if err != nil {
		return nil, err
	}
	audioURL, err := s.artifactURL(req.AudioArtifactKey)
	if err != nil {
		return nil, err
	}

	frameURLs := make([]string, 0, len(req.FrameArtifactKeys))
	for _, key := range req.FrameArtifactKeys {
		frameURL, err := s.artifactURL(key)
		if err != nil {
			return nil, err
		}
		frameURLs = append(frameURLs, frameURL)
	}

	return &outbound.RenderRequest{
		RequestID:  req.ID,
		OutputKey:  req.ComposedKey(),
		LipSyncURL: lipSyncURL,
		AudioURL:   audioURL,
		FrameURLs:  frameURLs,
		Captions:   captions,
	}, nil
}

func (s *pipelineStages) recordComposeOutcome(ctx context.Context, req *domain.VideoRequest, renderErr error) error {
	if renderErr != nil {
		req.ComposeState = domain.ComposeStateFailed
	} else {
		req.ComposeState = domain.ComposeStateSucceeded
		req.ComposedVideoKey = req.ComposedKey()
	}

	if err := s.store.Save(ctx, req, domain.StatusCompleted); err != nil {
		s.logger.ErrorWithFields(err, "Failed to record compose outcome", map[string]interface{}{
			"request_id": req.ID,
			"state":      string(req.ComposeState),
		})
		return err
	}

	return renderErr
}
