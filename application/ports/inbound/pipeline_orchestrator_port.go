package inbound

import "context"

// PipelineOrchestrator drives one video request through its remaining stages
// and owns the script review checkpoint. Start schedules stage execution on
// the worker pool and returns once the run is accepted, not once it finishes.
type PipelineOrchestrator interface {
	Start(ctx context.Context, requestID string) error
	ApproveScript(ctx context.Context, requestID string, editedScript string) error
	RejectScript(ctx context.Context, requestID string) error
}
