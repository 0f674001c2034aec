package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending                  Status = "pending"
	StatusProcessing               Status = "processing"
	StatusScriptPendingReview      Status = "script_pending_review"
	StatusScriptApproved           Status = "script_approved"
	StatusScriptRejected           Status = "script_rejected"
	StatusAudioGenerated           Status = "audio_generated"
	StatusCaptionsGenerated        Status = "captions_generated"
	StatusFramesGenerated          Status = "frames_generated"
	StatusFramesPartiallyGenerated Status = "frames_partially_generated"
	StatusCompleted                Status = "completed"
	StatusFailed                   Status = "failed"
)

var statusTransitions = map[Status][]Status{
	StatusPending:                  {StatusProcessing},
	StatusProcessing:               {StatusScriptPendingReview},
	StatusScriptPendingReview:      {StatusScriptApproved, StatusScriptRejected},
	StatusScriptApproved:           {StatusAudioGenerated},
	StatusAudioGenerated:           {StatusCaptionsGenerated},
	StatusCaptionsGenerated:        {StatusFramesGenerated, StatusFramesPartiallyGenerated},
	StatusFramesGenerated:          {StatusCompleted},
	StatusFramesPartiallyGenerated: {StatusCompleted},
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusScriptRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the transition table permits moving from s
// to next. failed is reachable from every non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusFailed {
		return !s.IsTerminal()
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ComposeState records the outcome of the final composition, which runs after
// the job is already completed and is tracked separately from Status.
type ComposeState string

const (
	ComposeStateNone      ComposeState = ""
	ComposeStatePending   ComposeState = "pending"
	ComposeStateSucceeded ComposeState = "succeeded"
	ComposeStateFailed    ComposeState = "failed"
)

// VideoRequest is the unit of work tracked by the pipeline. It is created by
// the collaborating application and mutated only by the orchestrator and the
// script review action.
type VideoRequest struct {
	ID                  string
	OwnerID             string
	QuestionnaireRef    string
	CharacterID         CharacterID
	Status              Status
	Script              string
	CaptionsText        string
	CaptionsArtifactKey string
	FrameArtifactKeys   []string
	AudioArtifactKey    string
	LipSyncArtifactKey  string
	ComposedVideoKey    string
	ComposeState        ComposeState
	BasePath            string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func NewVideoRequest(id, ownerID, questionnaireRef string, characterID CharacterID) VideoRequest {
	now := time.Now().UTC()
	return VideoRequest{
		ID:               id,
		OwnerID:          ownerID,
		QuestionnaireRef: questionnaireRef,
		CharacterID:      characterID,
		Status:           StatusPending,
		BasePath:         "videos/" + id,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Artifact keys follow a stable layout under BasePath that external tooling
// depends on; changing these names is a breaking change.

func (v *VideoRequest) AudioKey() string {
	return v.BasePath + "/audio.mp3"
}

func (v *VideoRequest) CaptionsKey() string {
	return v.BasePath + "/captions.srt"
}

func (v *VideoRequest) FrameKey(index int) string {
	return fmt.Sprintf("%s/frames/frame_%04d.png", v.BasePath, index)
}

func (v *VideoRequest) LipSyncKey() string {
	return v.BasePath + "/lipsync.mp4"
}

func (v *VideoRequest) ComposedKey() string {
	return v.BasePath + "/final.mp4"
}

// OwnsArtifact reports whether key sits under this request's namespace.
func (v *VideoRequest) OwnsArtifact(key string) bool {
	return len(key) > len(v.BasePath)+1 && key[:len(v.BasePath)+1] == v.BasePath+"/"
}
