package adapters

import (
	"context"
	"fmt"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/config"
	"net/http"
)

type questionnaireFetcher struct {
	ContentFetcher
	logger     outbound.LoggerPort
	conf       *config.QuestionnaireConfig
	authorizer Authorizer
}

// NewQuestionnaireFetcher reads answer summaries from the collaborating
// application's API, authenticating with client credentials.
func NewQuestionnaireFetcher(contentFetcher ContentFetcher, conf *config.QuestionnaireConfig,
	authorizer Authorizer, logger outbound.LoggerPort) outbound.QuestionnaireFetcherPort {
	return &questionnaireFetcher{
		ContentFetcher: contentFetcher,
		logger:         logger,
		conf:           conf,
		authorizer:     authorizer,
	}
}

func (q *questionnaireFetcher) Fetch(ctx context.Context, ref string) (string, error) {
	token, err := q.authorizer.Authorize(ctx)
	if err != nil {
		q.logger.Error(err, "Failed to authorize questionnaire fetch")
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/questionnaires/%s/summary", q.conf.ApiUrl, ref), nil)
	if err != nil {
		q.logger.Error(err, "Failed to create the HTTP request")
		return "", err
	}
	req.Header.Add("Authorization", "Bearer "+token)

	payload, err := q.FetchContent(req)
	if err != nil {
		return "", err
	}

	return string(payload), nil
}
