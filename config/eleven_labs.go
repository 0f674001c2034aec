package config

import (
	"fmt"
	"strconv"
)

type ElevenLabsConfig struct {
	ApiUrl          string
	ApiKey          string
	ModelId         string
	Stability       float64
	SimilarityBoost float64
}

func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiUrl, err := requireEnv("ELEVEN_LABS_API_URL")
	if err != nil {
		return nil, err
	}
	apiKey, err := requireEnv("ELEVEN_LABS_API_KEY")
	if err != nil {
		return nil, err
	}
	modelId, err := requireEnv("ELEVEN_LABS_MODEL_ID")
	if err != nil {
		return nil, err
	}
	stability, err := requireEnv("ELEVEN_LABS_STABILITY")
	if err != nil {
		return nil, err
	}
	stabilityVal, err := strconv.ParseFloat(stability, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse eleven labs stability: %w", err)
	}
	similarityBoost, err := requireEnv("ELEVEN_LABS_SIMILARITY_BOOST")
	if err != nil {
		return nil, err
	}
	similarityBoostVal, err := strconv.ParseFloat(similarityBoost, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse eleven labs similarity boost: %w", err)
	}

	return &ElevenLabsConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		ModelId:         modelId,
		Stability:       stabilityVal,
		SimilarityBoost: similarityBoostVal,
	}, nil
}
