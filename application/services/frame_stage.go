package services

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// RunFrames produces one image per story moment, in index order. A frame that
// exhausts its retries aborts the stage: frames already produced are
// persisted as a contiguous prefix under frames_partially_generated, and the
// error is propagated so the orchestrator decides the job's fate.
func (s *pipelineStages) RunFrames(ctx context.Context, req *domain.VideoRequest) error {
	profile, err := s.characterProfile(req)
	if err != nil {
		return err
	}

	moments := s.splitStoryMoments(req.Script)
	keys := make([]string, 0, len(moments))

	for index, moment := range moments {
		image, err := s.frames.Generate(ctx, index, moment+", "+profile.StylePrompt)
		if err != nil {
			return s.abortFrames(ctx, req, keys, len(moments), err)
		}

		key := req.FrameKey(index)
		if _, err := s.media.Put(ctx, key, image, "image/png"); err != nil {
			return s.abortFrames(ctx, req, keys, len(moments), err)
		}
		keys = append(keys, key)
	}

	req.FrameArtifactKeys = keys
	req.Status = domain.StatusFramesGenerated
	return s.store.Save(ctx, req, domain.StatusCaptionsGenerated)
}

// abortFrames records whatever contiguous prefix of frames succeeded. With no
// frames at all the stage reports the bare cause and the record is left for
// the orchestrator's failed write.
func (s *pipelineStages) abortFrames(ctx context.Context, req *domain.VideoRequest, keys []string, planned int, cause error) error {
	if len(keys) == 0 {
		return cause
	}

	req.FrameArtifactKeys = keys
	req.Status = domain.StatusFramesPartiallyGenerated
	if err := s.store.Save(ctx, req, domain.StatusCaptionsGenerated); err != nil {
		s.logger.ErrorWithFields(err, "Failed to persist partial frame set", map[string]interface{}{
			"request_id": req.ID,
			"generated":  len(keys),
		})
		return err
	}

	return &domain.PartialFailureError{
		Generated: len(keys),
		Planned:   planned,
		Cause:     cause,
	}
}
