package outbound

import "context"

// QuestionnaireFetcherPort resolves an opaque questionnaire reference into
// the answer summary the script prompt is built from.
type QuestionnaireFetcherPort interface {
	Fetch(ctx context.Context, ref string) (string, error)
}
