package outbound

import "context"

type GenerateScriptRequest struct {
	QuestionnaireSummary string
	CharacterName        string
}

// ScriptGeneratorPort produces the full narration script for a request.
type ScriptGeneratorPort interface {
	Generate(ctx context.Context, req GenerateScriptRequest) (string, error)
}
