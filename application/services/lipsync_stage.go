package services

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// RunLipSync renders the talking-head video and marks the job completed.
// Composition still runs afterwards, but its outcome is tracked in
// ComposeState rather than gating completion.
func (s *pipelineStages) RunLipSync(ctx context.Context, req *domain.VideoRequest) error {
	profile, err := s.characterProfile(req)
	if err != nil {
		return err
	}

	audioURL, err := s.artifactURL(req.AudioArtifactKey)
	if err != nil {
		return err
	}
	avatarURL, err := s.artifactURL(profile.AvatarImageKey)
	if err != nil {
		return err
	}

	video, err := s.lipSync.Generate(ctx, outbound.GenerateLipSyncParams{
		AudioURL:       audioURL,
		AvatarImageURL: avatarURL,
	})
	if err != nil {
		return err
	}

	key := req.LipSyncKey()
	if _, err := s.media.Put(ctx, key, video, "video/mp4"); err != nil {
		return err
	}

	prev := req.Status
	req.LipSyncArtifactKey = key
	req.ComposeState = domain.ComposeStatePending
	req.Status = domain.StatusCompleted
	return s.store.Save(ctx, req, prev)
}
