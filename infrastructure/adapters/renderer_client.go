package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/config"
	"github.com/matttrann/NDIS-Web-Application-sub000/polling"
	"net/http"
)

type renderSubmitRequest struct {
	RequestID  string          `json:"request_id"`
	OutputKey  string          `json:"output_key"`
	LipSyncURL string          `json:"lipsync_url"`
	AudioURL   string          `json:"audio_url"`
	FrameURLs  []string        `json:"frame_urls"`
	Captions   []renderCaption `json:"captions"`
}

type renderCaption struct {
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
	Text       string `json:"text"`
}

type renderSubmitResponse struct {
	ID string `json:"id"`
}

type renderStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type rendererClient struct {
	ContentFetcher
	logger outbound.LoggerPort
	conf   *config.RendererConfig
}

func NewRendererClient(contentFetcher ContentFetcher, conf *config.RendererConfig, logger outbound.LoggerPort) outbound.RendererPort {
	return &rendererClient{
		ContentFetcher: contentFetcher,
		logger:         logger,
		conf:           conf,
	}
}

// Render submits a composition job to the rendering engine and waits for it
// to finish. The engine writes the final video to OutputKey itself.
func (r *rendererClient) Render(ctx context.Context, renderReq outbound.RenderRequest) error {
	jobID, err := r.submit(ctx, renderReq)
	if err != nil {
		return err
	}

	_, err = polling.Await[struct{}](ctx, "renderer", jobID, r.fetchStatus,
		r.conf.PollInterval, r.conf.PollMaxAttempts, r.logger)
	return err
}

func (r *rendererClient) submit(ctx context.Context, renderReq outbound.RenderRequest) (string, error) {
	captions := make([]renderCaption, 0, len(renderReq.Captions))
	for _, c := range renderReq.Captions {
		captions = append(captions, renderCaption(c))
	}

	jsonPayload, err := json.Marshal(renderSubmitRequest{
		RequestID:  renderReq.RequestID,
		OutputKey:  renderReq.OutputKey,
		LipSyncURL: renderReq.LipSyncURL,
		AudioURL:   renderReq.AudioURL,
		FrameURLs:  renderReq.FrameURLs,
		Captions:   captions,
	})
	if err != nil {
		r.logger.Error(err, "Failed to marshal the render request")
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.conf.ApiUrl+"/render", bytes.NewBuffer(jsonPayload))
	if err != nil {
		r.logger.Error(err, "Failed to create the HTTP request")
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	rawRes, err := r.FetchContent(req)
	if err != nil {
		return "", err
	}

	var submitRes renderSubmitResponse
	if err := json.Unmarshal(rawRes, &submitRes); err != nil {
		r.logger.Error(err, "Failed to unmarshal the submit response")
		return "", err
	}

	return submitRes.ID, nil
}

func (r *rendererClient) fetchStatus(ctx context.Context, jobID string) (polling.JobStatus[struct{}], error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/render/%s", r.conf.ApiUrl, jobID), nil)
	if err != nil {
		return polling.JobStatus[struct{}]{}, err
	}

	rawRes, err := r.FetchContent(req)
	if err != nil {
		return polling.JobStatus[struct{}]{}, err
	}

	var statusRes renderStatusResponse
	if err := json.Unmarshal(rawRes, &statusRes); err != nil {
		return polling.JobStatus[struct{}]{}, err
	}

	switch statusRes.Status {
	case "completed":
		return polling.JobStatus[struct{}]{State: polling.JobStateSucceeded}, nil
	case "failed":
		return polling.JobStatus[struct{}]{State: polling.JobStateFailed, Message: statusRes.Error}, nil
	case "rendering":
		return polling.JobStatus[struct{}]{State: polling.JobStateRunning}, nil
	default:
		return polling.JobStatus[struct{}]{State: polling.JobStatePending}, nil
	}
}
