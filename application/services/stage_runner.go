package services

import (
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/inbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/domain"
	"regexp"
	"strings"
	"time"
)

// pipelineStages implements one function per pipeline stage. Every stage
// stores its artifacts under the request's base path and then persists the
// advanced status in a single guarded write, which is what makes the
// pipeline resumable between stages.
type pipelineStages struct {
	logger         outbound.LoggerPort
	store          outbound.VideoRequestStorePort
	media          outbound.MediaStorePort
	questionnaires outbound.QuestionnaireFetcherPort
	scripts        outbound.ScriptGeneratorPort
	speech         outbound.SpeechSynthesizerPort
	transcriber    outbound.TranscriberPort
	lipSync        outbound.LipSyncGeneratorPort
	renderer       outbound.RendererPort
	frames         *frameRetrier
	signedURLTTL   time.Duration
	momentRegexp   *regexp.Regexp
}

func NewPipelineStages(
	logger outbound.LoggerPort,
	store outbound.VideoRequestStorePort,
	media outbound.MediaStorePort,
	questionnaires outbound.QuestionnaireFetcherPort,
	scripts outbound.ScriptGeneratorPort,
	speech outbound.SpeechSynthesizerPort,
	transcriber outbound.TranscriberPort,
	lipSync outbound.LipSyncGeneratorPort,
	renderer outbound.RendererPort,
	frames *frameRetrier,
	signedURLTTL time.Duration) inbound.StageRunnerPort {
	return &pipelineStages{
		logger:         logger,
		store:          store,
		media:          media,
		questionnaires: questionnaires,
		scripts:        scripts,
		speech:         speech,
		transcriber:    transcriber,
		lipSync:        lipSync,
		renderer:       renderer,
		frames:         frames,
		signedURLTTL:   signedURLTTL,
		momentRegexp:   regexp.MustCompile(`[^.!?]+[.!?]?`),
	}
}

// splitStoryMoments segments the approved script into sentence-level story
// moments; each becomes one frame prompt.
func (s *pipelineStages) splitStoryMoments(script string) []string {
	moments := make([]string, 0)
	for _, raw := range s.momentRegexp.FindAllString(script, -1) {
		moment := strings.TrimSpace(raw)
		if moment != "" {
			moments = append(moments, moment)
		}
	}
	return moments
}

func (s *pipelineStages) characterProfile(req *domain.VideoRequest) (domain.CharacterProfile, error) {
	profile, err := domain.ProfileFor(req.CharacterID)
	if err != nil {
		s.logger.ErrorWithFields(err, "Request references an unknown character", map[string]interface{}{
			"request_id": req.ID,
			"character":  string(req.CharacterID),
		})
	}
	return profile, err
}

func (s *pipelineStages) artifactURL(key string) (string, error) {
	url, err := s.media.SignedURL(key, s.signedURLTTL)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to sign artifact URL", map[string]interface{}{
			"key": key,
		})
	}
	return url, err
}
