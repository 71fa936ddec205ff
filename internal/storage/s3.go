package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage writes archives to an S3 bucket. Objects are addressed with
// s3://<bucket>/<key> URIs.
type S3Storage struct {
	client *s3.Client
	bucket string
	logger *slog.Logger
}

// S3Options configures the S3 storage backend. AccessKeyID/SecretAccessKey
// are optional; when empty the default credential chain is used.
type S3Options struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Storage creates an S3 storage backend.
func NewS3Storage(ctx context.Context, opts S3Options, logger *slog.Logger) (*S3Storage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: opts.Bucket,
		logger: logger,
	}, nil
}

// Write stores the bytes under name in the bucket and returns an s3:// URI.
func (s *S3Storage) Write(ctx context.Context, name string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/zip"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put archive object: %w", err)
	}

	s.logger.Debug("archive uploaded", "bucket", s.bucket, "key", name, "size", len(data))

	return fmt.Sprintf("s3://%s/%s", s.bucket, name), nil
}
