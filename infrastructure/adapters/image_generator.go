package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/config"
	"github.com/matttrann/NDIS-Web-Application-sub000/polling"
	"net/http"
)

type imageSubmitRequest struct {
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Model          string `json:"model"`
	Number         int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type imageSubmitResponse struct {
	ID string `json:"id"`
}

type imageStatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Data   []struct {
		B64Json string `json:"b64_json"`
	} `json:"data"`
}

type imageGenerator struct {
	ContentFetcher
	logger      outbound.LoggerPort
	dalleConfig *config.DaLLeConfig
}

func NewImageGenerator(contentFetcher ContentFetcher, dalleConfig *config.DaLLeConfig, logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &imageGenerator{
		logger:         logger,
		ContentFetcher: contentFetcher,
		dalleConfig:    dalleConfig,
	}
}

func (i *imageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	jobID, err := i.submit(ctx, prompt)
	if err != nil {
		return nil, err
	}

	encoded, err := polling.Await[string](ctx, "image", jobID, i.fetchStatus,
		i.dalleConfig.PollInterval, i.dalleConfig.PollMaxAttempts, i.logger)
	if err != nil {
		return nil, err
	}

	decodedImage, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		i.logger.Error(err, "Failed to decode the generated image")
		return nil, err
	}

	return decodedImage, nil
}

func (i *imageGenerator) submit(ctx context.Context, prompt string) (string, error) {
	reqBody := imageSubmitRequest{
		Prompt:         prompt,
		Size:           i.dalleConfig.Size,
		Model:          i.dalleConfig.Model,
		Number:         1,
		ResponseFormat: "b64_json",
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		i.logger.Error(err, "Failed to marshal the request body")
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", i.dalleConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		i.logger.Error(err, "Failed to create the HTTP request")
		return "", err
	}
	req.Header.Add("Authorization", "Bearer "+i.dalleConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	rawRes, err := i.FetchContent(req)
	if err != nil {
		return "", err
	}

	var submitRes imageSubmitResponse
	if err := json.Unmarshal(rawRes, &submitRes); err != nil {
		i.logger.Error(err, "Failed to unmarshal the submit response")
		return "", err
	}

	return submitRes.ID, nil
}

func (i *imageGenerator) fetchStatus(ctx context.Context, jobID string) (polling.JobStatus[string], error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/%s", i.dalleConfig.ApiUrl, jobID), nil)
	if err != nil {
		return polling.JobStatus[string]{}, err
	}
	req.Header.Add("Authorization", "Bearer "+i.dalleConfig.ApiKey)

	rawRes, err := i.FetchContent(req)
	if err != nil {
		return polling.JobStatus[string]{}, err
	}

	var statusRes imageStatusResponse
	if err := json.Unmarshal(rawRes, &statusRes); err != nil {
		return polling.JobStatus[string]{}, err
	}

	switch statusRes.Status {
	case "succeeded":
		if len(statusRes.Data) == 0 {
			return polling.JobStatus[string]{State: polling.JobStateFailed, Message: "no image data in response"}, nil
		}
		return polling.JobStatus[string]{State: polling.JobStateSucceeded, Result: statusRes.Data[0].B64Json}, nil
	case "failed":
		return polling.JobStatus[string]{State: polling.JobStateFailed, Message: statusRes.Error}, nil
	case "running":
		return polling.JobStatus[string]{State: polling.JobStateRunning}, nil
	default:
		return polling.JobStatus[string]{State: polling.JobStatePending}, nil
	}
}
