package config

type QuestionnaireConfig struct {
	ApiUrl string
}

func GetQuestionnaireConfig() (*QuestionnaireConfig, error) {
	apiUrl, err := requireEnv("QUESTIONNAIRE_API_URL")
	if err != nil {
		return nil, err
	}

	return &QuestionnaireConfig{
		ApiUrl: apiUrl,
	}, nil
}
