package services

import (
	"context"
	"errors"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/inbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"sync"
)

// pipelineOrchestrator drives the remaining stages for one request as a
// detached task on the worker pool. It is the single place where a stage
// error becomes a failed status, and it owns the script review checkpoint.
type pipelineOrchestrator struct {
	logger     outbound.LoggerPort
	store      outbound.VideoRequestStorePort
	stages     inbound.StageRunnerPort
	dispatcher outbound.TaskDispatcher

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewPipelineOrchestrator(logger outbound.LoggerPort, store outbound.VideoRequestStorePort,
	stages inbound.StageRunnerPort, dispatcher outbound.TaskDispatcher) inbound.PipelineOrchestrator {
	return &pipelineOrchestrator{
		logger:     logger,
		store:      store,
		stages:     stages,
		dispatcher: dispatcher,
		inFlight:   make(map[string]struct{}),
	}
}

// Start schedules the pipeline for a request and returns once the run is
// accepted. It is idempotent: a request already mid-run is left alone, and a
// request whose status has no remaining automatic work is rejected.
func (o *pipelineOrchestrator) Start(ctx context.Context, requestID string) error {
	req, err := o.store.Get(ctx, requestID)
	if err != nil {
		return err
	}

	switch {
	case req.Status.IsTerminal() && !(req.Status == domain.StatusCompleted && req.ComposeState == domain.ComposeStatePending):
		return domain.ErrInvalidState
	case req.Status == domain.StatusScriptPendingReview:
		return domain.ErrInvalidState
	}

	if req.Status == domain.StatusPending {
		req.Status = domain.StatusProcessing
		if err := o.store.Save(ctx, req, domain.StatusPending); err != nil {
			return err
		}
	}

	return o.schedule(req)
}

func (o *pipelineOrchestrator) ApproveScript(ctx context.Context, requestID string, editedScript string) error {
	req, err := o.store.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.StatusScriptPendingReview {
		return domain.ErrInvalidState
	}

	if editedScript != "" {
		req.Script = editedScript
	}
	req.Status = domain.StatusScriptApproved
	if err := o.store.Save(ctx, req, domain.StatusScriptPendingReview); err != nil {
		return err
	}

	o.logger.InfoWithFields("Script approved, resuming pipeline", map[string]interface{}{
		"request_id": req.ID,
		"edited":     editedScript != "",
	})

	return o.schedule(req)
}

func (o *pipelineOrchestrator) RejectScript(ctx context.Context, requestID string) error {
	req, err := o.store.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.StatusScriptPendingReview {
		return domain.ErrInvalidState
	}

	req.Status = domain.StatusScriptRejected
	if err := o.store.Save(ctx, req, domain.StatusScriptPendingReview); err != nil {
		return err
	}

	o.logger.InfoWithFields("Script rejected, pipeline terminated", map[string]interface{}{
		"request_id": req.ID,
	})

	return nil
}

// schedule submits the run to the worker pool. The run gets a background
// context: it outlives the HTTP request that triggered it.
func (o *pipelineOrchestrator) schedule(req *domain.VideoRequest) error {
	if !o.acquire(req.ID) {
		o.logger.InfoWithFields("Pipeline already running for request, skipping", map[string]interface{}{
			"request_id": req.ID,
		})
		return nil
	}

	err := o.dispatcher.Submit(func() {
		defer o.release(req.ID)
		o.run(context.Background(), req)
	})
	if err != nil {
		o.release(req.ID)
		o.logger.Error(err, "Failed to submit pipeline run to worker pool")
		return err
	}

	return nil
}

// run executes the remaining stages in pipeline order, dispatching on the
// persisted status so the same entry point serves fresh runs and
// crash-resume alike.
func (o *pipelineOrchestrator) run(ctx context.Context, req *domain.VideoRequest) {
	for {
		var stage string
		var err error

		switch req.Status {
		case domain.StatusProcessing:
			stage = "script"
			err = o.stages.RunScript(ctx, req)
		case domain.StatusScriptPendingReview:
			// Suspended at the review gate until an external actor decides.
			return
		case domain.StatusScriptApproved:
			stage = "audio"
			err = o.stages.RunAudio(ctx, req)
		case domain.StatusAudioGenerated:
			stage = "captions"
			err = o.stages.RunCaptions(ctx, req)
		case domain.StatusCaptionsGenerated:
			stage = "frames"
			err = o.stages.RunFrames(ctx, req)
		case domain.StatusFramesGenerated, domain.StatusFramesPartiallyGenerated:
			stage = "lipsync"
			err = o.stages.RunLipSync(ctx, req)
		case domain.StatusCompleted:
			if req.ComposeState == domain.ComposeStatePending {
				o.compose(ctx, req)
			}
			return
		default:
			return
		}

		if err != nil {
			o.handleStageError(ctx, req, stage, err)
			return
		}
	}
}

// handleStageError is the single error-to-status mapping point. A partial
// frame outcome keeps its already persisted status; everything else becomes
// failed with the job's artifacts left intact.
func (o *pipelineOrchestrator) handleStageError(ctx context.Context, req *domain.VideoRequest, stage string, err error) {
	o.logger.ErrorWithFields(err, "Pipeline stage failed", map[string]interface{}{
		"request_id": req.ID,
		"stage":      stage,
		"status":     string(req.Status),
	})

	var partial *domain.PartialFailureError
	if errors.As(err, &partial) && partial.Generated > 0 {
		// Frames already persisted as frames_partially_generated; the run
		// halts here and a deliberate Start resumes degraded completion.
		return
	}

	prev := req.Status
	req.Status = domain.StatusFailed
	if saveErr := o.store.Save(ctx, req, prev); saveErr != nil {
		o.logger.ErrorWithFields(saveErr, "Failed to record failed status", map[string]interface{}{
			"request_id": req.ID,
			"stage":      stage,
		})
	}
}

// compose runs the best-effort composition stage. Its failure is recorded on
// the record by the stage itself and only logged here.
func (o *pipelineOrchestrator) compose(ctx context.Context, req *domain.VideoRequest) {
	if err := o.stages.RunCompose(ctx, req); err != nil {
		o.logger.ErrorWithFields(err, "Composition failed, job remains completed", map[string]interface{}{
			"request_id": req.ID,
		})
	}
}

func (o *pipelineOrchestrator) acquire(requestID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, running := o.inFlight[requestID]; running {
		return false
	}
	o.inFlight[requestID] = struct{}{}
	return true
}

func (o *pipelineOrchestrator) release(requestID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, requestID)
}
