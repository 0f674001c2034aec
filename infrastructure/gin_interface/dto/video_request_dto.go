package dto

import "time"

type CreateVideoRequest struct {
	OwnerID          string `json:"owner_id" binding:"required"`
	QuestionnaireRef string `json:"questionnaire_ref" binding:"required"`
	CharacterID      string `json:"character_id" binding:"required"`
}

type CreateVideoResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type VideoRequestResponse struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	Script           string    `json:"script,omitempty"`
	CaptionsText     string    `json:"captions_text,omitempty"`
	ComposedVideoKey string    `json:"composed_video_key,omitempty"`
	ComposeState     string    `json:"compose_state,omitempty"`
	FrameCount       int       `json:"frame_count"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ScriptReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Script string `json:"script"`
}

type ArtifactURLResponse struct {
	URL string `json:"url"`
}
