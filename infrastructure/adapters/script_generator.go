package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/donovanhide/eventsource"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/config"
	"io"
	"net/http"
	"strings"
)

const doneSignal = "[DONE]"
const maxStreamRetries = 3

type chatGptRequest struct {
	Stream   bool             `json:"stream"`
	Model    string           `json:"model"`
	Messages []chatGptMessage `json:"messages"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptChunkBody struct {
	Choices []chatGptResponseChoice `json:"choices"`
}

type chatGptResponseChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type scriptGenerator struct {
	logger    outbound.LoggerPort
	gptConfig *config.GptConfig
}

func NewScriptGenerator(gptConfig *config.GptConfig, logger outbound.LoggerPort) outbound.ScriptGeneratorPort {
	return &scriptGenerator{
		logger:    logger,
		gptConfig: gptConfig,
	}
}

// Generate streams the completion over SSE and collects the full script
// before returning, so the caller sees a single durable artifact.
func (s *scriptGenerator) Generate(ctx context.Context, genReq outbound.GenerateScriptRequest) (string, error) {
	req, err := s.createRequest(ctx, genReq)
	if err != nil {
		s.logger.Error(err, "Failed to create HTTP request for script stream")
		return "", err
	}

	stream, err := eventsource.SubscribeWithRequest("", req)
	if err != nil {
		s.logger.Error(err, "Failed to subscribe to script stream")
		return "", err
	}

	var builder strings.Builder
	retryCount := 0

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev := <-stream.Events:
			if ev.Data() == doneSignal {
				return strings.TrimSpace(builder.String()), nil
			}
			payload, err := s.extractPayload(ev)
			if err != nil {
				return "", err
			}
			builder.WriteString(payload)
			retryCount = 0
		case err := <-stream.Errors:
			if err == io.EOF {
				s.logger.Info("Script stream closed")
				return strings.TrimSpace(builder.String()), nil
			}
			if retryCount < maxStreamRetries {
				s.logger.ErrorWithFields(err, "Error occurred during streaming, retrying", map[string]interface{}{
					"retry_count": retryCount})
				retryCount++
				continue
			}
			s.logger.Error(err, "Error occurred during streaming, max retries reached")
			return "", err
		}
	}
}

func (s *scriptGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody chatGptChunkBody
	err := json.Unmarshal([]byte(event.Data()), &chunkBody)
	if err != nil {
		s.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}
	if len(chunkBody.Choices) == 0 {
		return "", nil
	}

	return chunkBody.Choices[0].Delta.Content, nil
}

func (s *scriptGenerator) createRequest(ctx context.Context, genReq outbound.GenerateScriptRequest) (*http.Request, error) {
	promptMessage := chatGptMessage{
		Role: "system",
		Content: fmt.Sprintf("You are %s, a friendly support coordinator explaining a participant's plan.\n"+
			"Write a short narration script based on these questionnaire answers:\n%s\n"+
			"Requirements:\n"+
			"- Speak directly to the participant in plain, warm language\n"+
			"- Use short sentences, each ending with a full stop, question mark or exclamation mark\n"+
			"- Each sentence should describe one concrete idea that can be illustrated\n"+
			"- No headings, lists or stage directions, narration text only\n"+
			"- Keep it under 200 words", genReq.CharacterName, genReq.QuestionnaireSummary),
	}

	promptReq := chatGptRequest{
		Stream:   true,
		Model:    s.gptConfig.Model,
		Messages: []chatGptMessage{promptMessage},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.gptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
