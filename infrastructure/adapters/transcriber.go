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

type transcriptSubmitRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcriptSubmitResponse struct {
	ID string `json:"id"`
}

type transcriptStatusResponse struct {
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

type transcriber struct {
	ContentFetcher
	logger outbound.LoggerPort
	conf   *config.TranscriberConfig
}

func NewTranscriber(contentFetcher ContentFetcher, conf *config.TranscriberConfig, logger outbound.LoggerPort) outbound.TranscriberPort {
	return &transcriber{
		ContentFetcher: contentFetcher,
		logger:         logger,
		conf:           conf,
	}
}

// Transcribe submits the audio URL, polls until the transcript is ready and
// then fetches the subtitle markup for the same transcript.
func (t *transcriber) Transcribe(ctx context.Context, audioURL string) (*outbound.Transcript, error) {
	jobID, err := t.submit(ctx, audioURL)
	if err != nil {
		return nil, err
	}

	text, err := polling.Await[string](ctx, "transcriber", jobID, t.fetchStatus,
		t.conf.PollInterval, t.conf.PollMaxAttempts, t.logger)
	if err != nil {
		return nil, err
	}

	markup, err := t.fetchMarkup(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return &outbound.Transcript{Text: text, Markup: markup}, nil
}

func (t *transcriber) submit(ctx context.Context, audioURL string) (string, error) {
	jsonPayload, err := json.Marshal(transcriptSubmitRequest{AudioURL: audioURL})
	if err != nil {
		t.logger.Error(err, "Failed to marshal the transcript request")
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.conf.ApiUrl+"/transcripts", bytes.NewBuffer(jsonPayload))
	if err != nil {
		t.logger.Error(err, "Failed to create the HTTP request")
		return "", err
	}
	req.Header.Add("Authorization", t.conf.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	rawRes, err := t.FetchContent(req)
	if err != nil {
		return "", err
	}

	var submitRes transcriptSubmitResponse
	if err := json.Unmarshal(rawRes, &submitRes); err != nil {
		t.logger.Error(err, "Failed to unmarshal the submit response")
		return "", err
	}

	return submitRes.ID, nil
}

func (t *transcriber) fetchStatus(ctx context.Context, jobID string) (polling.JobStatus[string], error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/transcripts/%s", t.conf.ApiUrl, jobID), nil)
	if err != nil {
		return polling.JobStatus[string]{}, err
	}
	req.Header.Add("Authorization", t.conf.ApiKey)

	rawRes, err := t.FetchContent(req)
	if err != nil {
		return polling.JobStatus[string]{}, err
	}

	var statusRes transcriptStatusResponse
	if err := json.Unmarshal(rawRes, &statusRes); err != nil {
		return polling.JobStatus[string]{}, err
	}

	switch statusRes.Status {
	case "completed":
		return polling.JobStatus[string]{State: polling.JobStateSucceeded, Result: statusRes.Text}, nil
	case "error":
		return polling.JobStatus[string]{State: polling.JobStateFailed, Message: statusRes.Error}, nil
	case "processing":
		return polling.JobStatus[string]{State: polling.JobStateRunning}, nil
	default:
		return polling.JobStatus[string]{State: polling.JobStatePending}, nil
	}
}

func (t *transcriber) fetchMarkup(ctx context.Context, jobID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/transcripts/%s/srt", t.conf.ApiUrl, jobID), nil)
	if err != nil {
		t.logger.Error(err, "Failed to create the HTTP request")
		return "", err
	}
	req.Header.Add("Authorization", t.conf.ApiKey)

	rawRes, err := t.FetchContent(req)
	if err != nil {
		return "", err
	}

	return string(rawRes), nil
}
