package config

type AuthorizerConfig struct {
	ClientID      string
	ClientSecret  string
	TokenEndpoint string
}

func NewAuthorizerConfig() (*AuthorizerConfig, error) {
	clientID, err := requireEnv("CLIENT_ID")
	if err != nil {
		return nil, err
	}
	clientSecret, err := requireEnv("CLIENT_SECRET")
	if err != nil {
		return nil, err
	}
	tokenEndpoint, err := requireEnv("TOKEN_ENDPOINT")
	if err != nil {
		return nil, err
	}
	return &AuthorizerConfig{
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		TokenEndpoint: tokenEndpoint,
	}, nil
}
