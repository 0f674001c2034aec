package inbound

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// StageRunnerPort exposes one function per pipeline stage. Each stage calls
// its adapters, stores artifacts under the request's base path and persists
// the advanced status in a single guarded write before returning. Stages do
// not catch adapter errors; the orchestrator maps them to a terminal status.
type StageRunnerPort interface {
	RunScript(ctx context.Context, req *domain.VideoRequest) error
	RunAudio(ctx context.Context, req *domain.VideoRequest) error
	RunCaptions(ctx context.Context, req *domain.VideoRequest) error
	RunFrames(ctx context.Context, req *domain.VideoRequest) error
	RunLipSync(ctx context.Context, req *domain.VideoRequest) error
	RunCompose(ctx context.Context, req *domain.VideoRequest) error
}
