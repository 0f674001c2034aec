package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"github.com/matttrann/NDIS-Web-Application-sub000/infrastructure/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

const testMarkup = "1\n00:00:00,000 --> 00:00:02,000\nSentence one.\n\n" +
	"2\n00:00:02,000 --> 00:00:04,000\nSentence two.\n\n" +
	"3\n00:00:04,000 --> 00:00:06,000\nSentence three.\n"

// fakeRequestStore mimics the conditional-write semantics of the real store:
// Save succeeds only when the stored status matches expected.
type fakeRequestStore struct {
	mu       sync.Mutex
	requests map[string]domain.VideoRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[string]domain.VideoRequest)}
}

func (f *fakeRequestStore) Create(_ context.Context, req *domain.VideoRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.requests[req.ID]; exists {
		return domain.ErrInvalidState
	}
	f.requests[req.ID] = *req
	return nil
}

func (f *fakeRequestStore) Get(_ context.Context, id string) (*domain.VideoRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (f *fakeRequestStore) Save(_ context.Context, req *domain.VideoRequest, expected domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != expected {
		return domain.ErrInvalidState
	}
	req.UpdatedAt = time.Now().UTC()
	f.requests[req.ID] = *req
	return nil
}

type fakeMediaStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: make(map[string][]byte)}
}

func (f *fakeMediaStore) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = body
	return "mem://" + key, nil
}

func (f *fakeMediaStore) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return body, nil
}

func (f *fakeMediaStore) SignedURL(key string, _ time.Duration) (string, error) {
	return "https://signed.test/" + key, nil
}

type fakeQuestionnaireFetcher struct{}

func (f *fakeQuestionnaireFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return "Participant enjoys swimming and wants help with travel training.", nil
}

type fakeScriptGenerator struct {
	script string
}

func (f *fakeScriptGenerator) Generate(_ context.Context, _ outbound.GenerateScriptRequest) (string, error) {
	return f.script, nil
}

type fakeSpeechSynthesizer struct {
	err error
}

func (f *fakeSpeechSynthesizer) Synthesize(_ context.Context, _ outbound.SynthesizeSpeechParams) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3-bytes"), nil
}

type fakeTranscriber struct{}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) (*outbound.Transcript, error) {
	return &outbound.Transcript{
		Text:   "Sentence one. Sentence two. Sentence three.",
		Markup: testMarkup,
	}, nil
}

// fakeImageGenerator fails every attempt for the configured moment index,
// counting one prompt per attempt so retry budgets are observable.
type fakeImageGenerator struct {
	mu        sync.Mutex
	failFrom  int
	callCount int
	prompts   []string
}

func (f *fakeImageGenerator) Generate(_ context.Context, prompt string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount++
	f.prompts = append(f.prompts, prompt)
	if f.failFrom >= 0 && len(f.prompts) > f.failFrom {
		return nil, fmt.Errorf("image provider rejected prompt")
	}
	return []byte("png-bytes"), nil
}

type fakeLipSyncGenerator struct{}

func (f *fakeLipSyncGenerator) Generate(_ context.Context, _ outbound.GenerateLipSyncParams) ([]byte, error) {
	return []byte("mp4-bytes"), nil
}

type fakeRenderer struct {
	err      error
	requests []outbound.RenderRequest
}

func (f *fakeRenderer) Render(_ context.Context, req outbound.RenderRequest) error {
	f.requests = append(f.requests, req)
	return f.err
}

// inlineDispatcher runs submitted tasks synchronously so the whole pipeline
// finishes before Start returns.
type inlineDispatcher struct{}

func (d *inlineDispatcher) Submit(task func()) error {
	task()
	return nil
}

type pipelineFixture struct {
	store        *fakeRequestStore
	media        *fakeMediaStore
	images       *fakeImageGenerator
	speech       *fakeSpeechSynthesizer
	renderer     *fakeRenderer
	orchestrator *pipelineOrchestrator
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	logger := adapters.NewZerologWrapper()
	store := newFakeRequestStore()
	media := newFakeMediaStore()
	images := &fakeImageGenerator{failFrom: -1}
	speech := &fakeSpeechSynthesizer{}
	renderer := &fakeRenderer{}

	retrier := NewFrameRetrier(images, 3, time.Millisecond, time.Millisecond, logger)

	stages := NewPipelineStages(logger, store, media, &fakeQuestionnaireFetcher{},
		&fakeScriptGenerator{script: "Sentence one. Sentence two. Sentence three."},
		speech, &fakeTranscriber{}, &fakeLipSyncGenerator{}, renderer, retrier, time.Minute)

	orchestrator := NewPipelineOrchestrator(logger, store, stages, &inlineDispatcher{}).(*pipelineOrchestrator)

	return &pipelineFixture{
		store:        store,
		media:        media,
		images:       images,
		speech:       speech,
		renderer:     renderer,
		orchestrator: orchestrator,
	}
}

func (p *pipelineFixture) createRequest(t *testing.T, id string) *domain.VideoRequest {
	t.Helper()
	req := domain.NewVideoRequest(id, "owner-1", "questionnaire-1", domain.CharacterMaya)
	require.NoError(t, p.store.Create(context.Background(), &req))
	return &req
}

func (p *pipelineFixture) mustGet(t *testing.T, id string) *domain.VideoRequest {
	t.Helper()
	req, err := p.store.Get(context.Background(), id)
	require.NoError(t, err)
	return req
}

func TestStart_SuspendsAtScriptReview(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.createRequest(t, "req-1")

	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusScriptPendingReview, stored.Status)
	assert.Equal(t, "Sentence one. Sentence two. Sentence three.", stored.Script)
	assert.Empty(t, stored.AudioArtifactKey)
}

func TestStart_WhilePendingReviewIsRejected(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.createRequest(t, "req-1")

	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	err := fixture.orchestrator.Start(context.Background(), "req-1")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStart_UnknownRequest(t *testing.T) {
	fixture := newPipelineFixture(t)

	err := fixture.orchestrator.Start(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRejectScript(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	require.NoError(t, fixture.orchestrator.RejectScript(context.Background(), "req-1"))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusScriptRejected, stored.Status)

	err := fixture.orchestrator.Start(context.Background(), "req-1")
	require.ErrorIs(t, err, domain.ErrInvalidState)

	err = fixture.orchestrator.RejectScript(context.Background(), "req-1")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestApproveScript_RunsToCompletion(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1", ""))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, domain.ComposeStateSucceeded, stored.ComposeState)
	assert.Equal(t, "videos/req-1/audio.mp3", stored.AudioArtifactKey)
	assert.Equal(t, "videos/req-1/captions.srt", stored.CaptionsArtifactKey)
	assert.Equal(t, "videos/req-1/lipsync.mp4", stored.LipSyncArtifactKey)
	assert.Equal(t, "videos/req-1/final.mp4", stored.ComposedVideoKey)
	assert.Equal(t, []string{
		"videos/req-1/frames/frame_0000.png",
		"videos/req-1/frames/frame_0001.png",
		"videos/req-1/frames/frame_0002.png",
	}, stored.FrameArtifactKeys)
	assert.NotEmpty(t, stored.CaptionsText)

	require.Len(t, fixture.renderer.requests, 1)
	renderReq := fixture.renderer.requests[0]
	assert.Equal(t, "videos/req-1/final.mp4", renderReq.OutputKey)
	assert.Len(t, renderReq.FrameURLs, 3)
	assert.Len(t, renderReq.Captions, 3)
}

func TestApproveScript_EditedScriptWins(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1",
		"Edited sentence one. Edited sentence two."))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, "Edited sentence one. Edited sentence two.", stored.Script)
	assert.Len(t, stored.FrameArtifactKeys, 2)
}

func TestApproveScript_RequiresPendingReview(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.createRequest(t, "req-1")

	err := fixture.orchestrator.ApproveScript(context.Background(), "req-1", "")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStageFailure_MarksRequestFailed(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.speech.err = errors.New("voice service unavailable")
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1", ""))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusFailed, stored.Status)
	assert.Empty(t, stored.AudioArtifactKey)
}

func TestFrameFailure_PersistsContiguousPrefix(t *testing.T) {
	fixture := newPipelineFixture(t)
	// first two moments succeed, every attempt at the third fails
	fixture.images.failFrom = 2
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1", ""))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusFramesPartiallyGenerated, stored.Status)
	assert.Equal(t, []string{
		"videos/req-1/frames/frame_0000.png",
		"videos/req-1/frames/frame_0001.png",
	}, stored.FrameArtifactKeys)
	assert.Empty(t, stored.LipSyncArtifactKey)
	// two successes plus three exhausted attempts at the failing frame
	assert.Equal(t, 5, fixture.images.callCount)
}

func TestFrameFailure_DeliberateStartResumesDegraded(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.images.failFrom = 2
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))
	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1", ""))

	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, domain.ComposeStateSucceeded, stored.ComposeState)
	assert.Len(t, stored.FrameArtifactKeys, 2)
	require.Len(t, fixture.renderer.requests, 1)
	assert.Len(t, fixture.renderer.requests[0].FrameURLs, 2)
}

func TestFirstFrameFailure_MarksRequestFailed(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.images.failFrom = 0
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1", ""))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusFailed, stored.Status)
	assert.Empty(t, stored.FrameArtifactKeys)
}

func TestComposeFailure_JobStaysCompleted(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.renderer.err = errors.New("render farm down")
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))

	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1", ""))

	stored := fixture.mustGet(t, "req-1")
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, domain.ComposeStateFailed, stored.ComposeState)
	assert.Empty(t, stored.ComposedVideoKey)

	// composition already resolved, nothing left to start
	err := fixture.orchestrator.Start(context.Background(), "req-1")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStart_CompletedJobIsRejected(t *testing.T) {
	fixture := newPipelineFixture(t)
	fixture.createRequest(t, "req-1")
	require.NoError(t, fixture.orchestrator.Start(context.Background(), "req-1"))
	require.NoError(t, fixture.orchestrator.ApproveScript(context.Background(), "req-1", ""))

	err := fixture.orchestrator.Start(context.Background(), "req-1")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}
