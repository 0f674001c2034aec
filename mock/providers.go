// Package mock_generator supplies a canned provider suite so the pipeline
// can run end to end locally without any provider keys. Selected in main via
// MOCK_PROVIDERS=true.
package mock_generator

import (
	"context"
	"fmt"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"time"
)

type Suite struct {
	logger outbound.LoggerPort
	delay  time.Duration
}

func NewSuite(logger outbound.LoggerPort, delay time.Duration) *Suite {
	return &Suite{
		logger: logger,
		delay:  delay,
	}
}

func (s *Suite) wait(ctx context.Context, what string) error {
	s.logger.DebugWithFields("mock provider working", map[string]interface{}{
		"provider": what,
		"delay":    s.delay.String(),
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}

type scriptProvider struct{ *Suite }

func (s *Suite) ScriptGenerator() outbound.ScriptGeneratorPort {
	return &scriptProvider{s}
}

func (p *scriptProvider) Generate(ctx context.Context, req outbound.GenerateScriptRequest) (string, error) {
	if err := p.wait(ctx, "script"); err != nil {
		return "", err
	}
	return fmt.Sprintf("Hi, I am %s. Your plan is ready. Let us walk through it together.",
		req.CharacterName), nil
}

type speechProvider struct{ *Suite }

func (s *Suite) SpeechSynthesizer() outbound.SpeechSynthesizerPort {
	return &speechProvider{s}
}

func (p *speechProvider) Synthesize(ctx context.Context, params outbound.SynthesizeSpeechParams) ([]byte, error) {
	if err := p.wait(ctx, "speech"); err != nil {
		return nil, err
	}
	return []byte("mock-mp3-bytes"), nil
}

type transcriberProvider struct{ *Suite }

func (s *Suite) Transcriber() outbound.TranscriberPort {
	return &transcriberProvider{s}
}

func (p *transcriberProvider) Transcribe(ctx context.Context, audioURL string) (*outbound.Transcript, error) {
	if err := p.wait(ctx, "transcriber"); err != nil {
		return nil, err
	}
	return &outbound.Transcript{
		Text: "Hi, I am your coordinator. Your plan is ready.",
		Markup: "1\n00:00:00,000 --> 00:00:02,000\nHi, I am your coordinator.\n\n" +
			"2\n00:00:02,000 --> 00:00:04,000\nYour plan is ready.\n",
	}, nil
}

type imageProvider struct{ *Suite }

func (s *Suite) ImageGenerator() outbound.ImageGeneratorPort {
	return &imageProvider{s}
}

func (p *imageProvider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if err := p.wait(ctx, "image"); err != nil {
		return nil, err
	}
	return []byte("mock-png-bytes"), nil
}

type lipSyncProvider struct{ *Suite }

func (s *Suite) LipSyncGenerator() outbound.LipSyncGeneratorPort {
	return &lipSyncProvider{s}
}

func (p *lipSyncProvider) Generate(ctx context.Context, params outbound.GenerateLipSyncParams) ([]byte, error) {
	if err := p.wait(ctx, "lipsync"); err != nil {
		return nil, err
	}
	return []byte("mock-mp4-bytes"), nil
}

type rendererProvider struct{ *Suite }

func (s *Suite) Renderer() outbound.RendererPort {
	return &rendererProvider{s}
}

func (p *rendererProvider) Render(ctx context.Context, req outbound.RenderRequest) error {
	return p.wait(ctx, "renderer")
}

type questionnaireProvider struct{ *Suite }

func (s *Suite) QuestionnaireFetcher() outbound.QuestionnaireFetcherPort {
	return &questionnaireProvider{s}
}

func (p *questionnaireProvider) Fetch(ctx context.Context, ref string) (string, error) {
	if err := p.wait(ctx, "questionnaire"); err != nil {
		return "", err
	}
	return "Participant wants help with daily routines and community activities.", nil
}
