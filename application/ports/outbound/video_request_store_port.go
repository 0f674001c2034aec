package outbound

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// VideoRequestStorePort persists VideoRequest records. Save writes the whole
// record atomically, guarded on the status currently stored for the request:
// the write succeeds only when the stored status equals expected, which keeps
// concurrent runs of the same job from racing each other. A failed guard
// surfaces as domain.ErrInvalidState.
type VideoRequestStorePort interface {
	Create(ctx context.Context, req *domain.VideoRequest) error
	Get(ctx context.Context, id string) (*domain.VideoRequest, error)
	Save(ctx context.Context, req *domain.VideoRequest, expected domain.Status) error
}
