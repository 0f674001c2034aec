package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"github.com/matttrann/NDIS-Web-Application-sub000/infrastructure/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubStore struct {
	requests map[string]*domain.VideoRequest
}

func (s *stubStore) Create(_ context.Context, req *domain.VideoRequest) error {
	s.requests[req.ID] = req
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*domain.VideoRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (s *stubStore) Save(_ context.Context, req *domain.VideoRequest, _ domain.Status) error {
	s.requests[req.ID] = req
	return nil
}

type stubMediaStore struct{}

func (s *stubMediaStore) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "mem://" + key, nil
}

func (s *stubMediaStore) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

func (s *stubMediaStore) SignedURL(key string, _ time.Duration) (string, error) {
	return "https://signed.test/" + key, nil
}

type stubOrchestrator struct {
	startErr error
	started  []string
	approved []string
	rejected []string
	lastEdit string
}

func (s *stubOrchestrator) Start(_ context.Context, requestID string) error {
	s.started = append(s.started, requestID)
	return s.startErr
}

func (s *stubOrchestrator) ApproveScript(_ context.Context, requestID string, editedScript string) error {
	s.approved = append(s.approved, requestID)
	s.lastEdit = editedScript
	return nil
}

func (s *stubOrchestrator) RejectScript(_ context.Context, requestID string) error {
	s.rejected = append(s.rejected, requestID)
	return nil
}

func newTestRouter(store *stubStore, orchestrator *stubOrchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewVideoRequestsController(adapters.NewZerologWrapper(), store, &stubMediaStore{},
		orchestrator, time.Minute)
	controller.RegisterRoutes(router)
	return router
}

func seedRequest(store *stubStore, id string, status domain.Status) *domain.VideoRequest {
	req := domain.NewVideoRequest(id, "owner-1", "q-1", domain.CharacterMaya)
	req.Status = status
	store.requests[id] = &req
	return &req
}

func TestCreateRequest(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	router := newTestRouter(store, &stubOrchestrator{})

	body, _ := json.Marshal(map[string]string{
		"owner_id":          "owner-1",
		"questionnaire_ref": "q-1",
		"character_id":      "maya",
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "pending", res["status"])
	assert.NotEmpty(t, res["id"])
	assert.Contains(t, store.requests, res["id"])
}

func TestCreateRequest_UnknownCharacter(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	router := newTestRouter(store, &stubOrchestrator{})

	body, _ := json.Marshal(map[string]string{
		"owner_id":          "owner-1",
		"questionnaire_ref": "q-1",
		"character_id":      "nobody",
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.requests)
}

func TestStartRequest(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	orchestrator := &stubOrchestrator{}
	router := newTestRouter(store, orchestrator)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/req-1/start", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"req-1"}, orchestrator.started)
}

func TestStartRequest_InvalidStateMapsToConflict(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	orchestrator := &stubOrchestrator{startErr: domain.ErrInvalidState}
	router := newTestRouter(store, orchestrator)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/req-1/start", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetRequest(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	seeded := seedRequest(store, "req-1", domain.StatusScriptPendingReview)
	seeded.Script = "Sentence one."
	router := newTestRouter(store, &stubOrchestrator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/requests/req-1", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "script_pending_review", res["status"])
	assert.Equal(t, "Sentence one.", res["script"])
}

func TestGetRequest_NotFound(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	router := newTestRouter(store, &stubOrchestrator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/requests/missing", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewScript_Approve(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	orchestrator := &stubOrchestrator{}
	router := newTestRouter(store, orchestrator)

	body, _ := json.Marshal(map[string]string{"action": "approve", "script": "Edited."})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/req-1/script-review", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"req-1"}, orchestrator.approved)
	assert.Equal(t, "Edited.", orchestrator.lastEdit)
	assert.Empty(t, orchestrator.rejected)
}

func TestReviewScript_Reject(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	orchestrator := &stubOrchestrator{}
	router := newTestRouter(store, orchestrator)

	body, _ := json.Marshal(map[string]string{"action": "reject"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/req-1/script-review", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"req-1"}, orchestrator.rejected)
	assert.Empty(t, orchestrator.approved)
}

func TestReviewScript_InvalidAction(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	router := newTestRouter(store, &stubOrchestrator{})

	body, _ := json.Marshal(map[string]string{"action": "maybe"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/req-1/script-review", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetArtifactURL(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	seedRequest(store, "req-1", domain.StatusCompleted)
	router := newTestRouter(store, &stubOrchestrator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/requests/req-1/artifacts?key=videos/req-1/final.mp4", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "https://signed.test/videos/req-1/final.mp4", res["url"])
}

func TestGetArtifactURL_OutsideNamespace(t *testing.T) {
	store := &stubStore{requests: make(map[string]*domain.VideoRequest)}
	seedRequest(store, "req-1", domain.StatusCompleted)
	router := newTestRouter(store, &stubOrchestrator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/requests/req-1/artifacts?key=videos/req-2/final.mp4", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
