package adapters

import (
	"bytes"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/matttrann/NDIS-Web-Application-sub000/application/ports/outbound"
	"github.com/matttrann/NDIS-Web-Application-sub000/config"
	"github.com/rs/zerolog/log"
	"io"
	"time"
)

type s3MediaStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3MediaStore(s3Svc *s3.S3, s3Config *config.S3Config) outbound.MediaStorePort {
	return &s3MediaStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3MediaStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", key).
			Msg("Failed to upload object to S3")
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Config.BucketName, s.s3Config.Region, key)
	log.Debug().
		Str("s3Url", s3Url).
		Msg("Successfully uploaded object to S3")

	return s3Url, nil
}

func (s *s3MediaStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.s3Svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", key).
			Msg("Failed to get object from S3")
		return nil, err
	}

	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to close S3 object body")
		}
	}(out.Body)

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Failed to read S3 object body")
		return nil, err
	}

	return payload, nil
}

// SignedURL returns a time-limited GET URL for an artifact, used both by the
// UI and by providers that fetch inputs themselves.
func (s *s3MediaStore) SignedURL(key string, ttl time.Duration) (string, error) {
	req, _ := s.s3Svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})

	signedURL, err := req.Presign(ttl)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("key", key).
			Msg("Failed to presign object URL")
		return "", err
	}

	return signedURL, nil
}
