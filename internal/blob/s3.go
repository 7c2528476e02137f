package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config holds the object-storage connection settings. BaseEndpoint is
// non-empty when targeting a MinIO-style deployment instead of AWS.
type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

// S3Storage implements Storage over an S3-compatible bucket.
type S3Storage struct {
	client *s3.Client
	bucket string
	base   string
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")))
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.BaseEndpoint
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	} else {
		base = strings.TrimRight(base, "/") + "/" + cfg.Bucket
	}

	return &S3Storage{client: client, bucket: cfg.Bucket, base: base}, nil
}

// PhotoKey namespaces uploads by day so buckets stay browsable.
func PhotoKey(now time.Time) string {
	return fmt.Sprintf("photos/%04d/%02d/%02d/%v",
		now.Year(), now.Month(), now.Day(), uuid.New())
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, path string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}
	return s.base + "/" + path, nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(strings.TrimPrefix(url, s.base), "/")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
