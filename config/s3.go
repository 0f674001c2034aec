package config

import (
	"time"
)

type S3Config struct {
	BucketName   string
	Region       string
	SignedURLTTL time.Duration
}

func GetS3Config() (*S3Config, error) {
	bucketName, err := requireEnv("BUCKET_NAME")
	if err != nil {
		return nil, err
	}
	region, err := requireEnv("REGION")
	if err != nil {
		return nil, err
	}
	signedURLTTL, err := durationEnv("S3_SIGNED_URL_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		BucketName:   bucketName,
		Region:       region,
		SignedURLTTL: signedURLTTL,
	}, nil
}
