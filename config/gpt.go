package config

type GptConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

func GetGptConfig() (*GptConfig, error) {
	model, err := requireEnv("GPT_MODEL")
	if err != nil {
		return nil, err
	}
	apiUrl, err := requireEnv("GPT_API_URL")
	if err != nil {
		return nil, err
	}
	apiKey, err := requireEnv("GPT_API_KEY")
	if err != nil {
		return nil, err
	}
	return &GptConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}
