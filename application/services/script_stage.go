package services

import (
	"context"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
)

// RunScript resolves the questionnaire, generates the narration script and
// suspends the pipeline at the review gate.
func (s *pipelineStages) RunScript(ctx context.Context, req *domain.VideoRequest) error {
	if _, err := s.characterProfile(req); err != nil {
		return err
	}

	summary, err := s.questionnaires.Fetch(ctx, req.QuestionnaireRef)
	if err != nil {
		return err
	}

	script, err := s.scripts.Generate(ctx, outbound.GenerateScriptRequest{
		QuestionnaireSummary: summary,
		CharacterName:        string(req.CharacterID),
	})
	if err != nil {
		return err
	}

	req.Script = script
	req.Status = domain.StatusScriptPendingReview
	return s.store.Save(ctx, req, domain.StatusProcessing)
}
