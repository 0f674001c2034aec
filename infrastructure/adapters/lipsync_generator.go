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

type lipSyncSubmitRequest struct {
	Input lipSyncSubmitInput `json:"input"`
}

type lipSyncSubmitInput struct {
	AudioURL string `json:"audio_url"`
	ImageURL string `json:"image_url"`
}

type lipSyncSubmitResponse struct {
	ID string `json:"id"`
}

type lipSyncStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Output struct {
		VideoURL string `json:"video_url"`
	} `json:"output"`
}

type lipSyncGenerator struct {
	ContentFetcher
	logger outbound.LoggerPort
	conf   *config.LipSyncConfig
}

func NewLipSyncGenerator(contentFetcher ContentFetcher, conf *config.LipSyncConfig, logger outbound.LoggerPort) outbound.LipSyncGeneratorPort {
	return &lipSyncGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		conf:           conf,
	}
}

func (l *lipSyncGenerator) Generate(ctx context.Context, params outbound.GenerateLipSyncParams) ([]byte, error) {
	jobID, err := l.submit(ctx, params)
	if err != nil {
		return nil, err
	}

	videoURL, err := polling.Await[string](ctx, "lipsync", jobID, l.fetchStatus,
		l.conf.PollInterval, l.conf.PollMaxAttempts, l.logger)
	if err != nil {
		return nil, err
	}

	return l.download(ctx, videoURL)
}

func (l *lipSyncGenerator) submit(ctx context.Context, params outbound.GenerateLipSyncParams) (string, error) {
	reqBody := lipSyncSubmitRequest{
		Input: lipSyncSubmitInput{
			AudioURL: params.AudioURL,
			ImageURL: params.AvatarImageURL,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		l.logger.Error(err, "Failed to marshal the lip-sync request")
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", l.conf.ApiUrl+"/run", bytes.NewBuffer(jsonPayload))
	if err != nil {
		l.logger.Error(err, "Failed to create the HTTP request")
		return "", err
	}
	req.Header.Add("Authorization", "Bearer "+l.conf.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	rawRes, err := l.FetchContent(req)
	if err != nil {
		return "", err
	}

	var submitRes lipSyncSubmitResponse
	if err := json.Unmarshal(rawRes, &submitRes); err != nil {
		l.logger.Error(err, "Failed to unmarshal the submit response")
		return "", err
	}

	return submitRes.ID, nil
}

func (l *lipSyncGenerator) fetchStatus(ctx context.Context, jobID string) (polling.JobStatus[string], error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/status/%s", l.conf.ApiUrl, jobID), nil)
	if err != nil {
		return polling.JobStatus[string]{}, err
	}
	req.Header.Add("Authorization", "Bearer "+l.conf.ApiKey)

	rawRes, err := l.FetchContent(req)
	if err != nil {
		return polling.JobStatus[string]{}, err
	}

	var statusRes lipSyncStatusResponse
	if err := json.Unmarshal(rawRes, &statusRes); err != nil {
		return polling.JobStatus[string]{}, err
	}

	switch statusRes.Status {
	case "COMPLETED":
		return polling.JobStatus[string]{State: polling.JobStateSucceeded, Result: statusRes.Output.VideoURL}, nil
	case "FAILED", "CANCELLED", "TIMED_OUT":
		return polling.JobStatus[string]{State: polling.JobStateFailed, Message: statusRes.Error}, nil
	case "IN_PROGRESS":
		return polling.JobStatus[string]{State: polling.JobStateRunning}, nil
	default:
		return polling.JobStatus[string]{State: polling.JobStatePending}, nil
	}
}

func (l *lipSyncGenerator) download(ctx context.Context, videoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", videoURL, nil)
	if err != nil {
		l.logger.Error(err, "Failed to create the download request")
		return nil, err
	}

	return l.FetchContent(req)
}
