package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// DefaultUploadTimeout bounds a single upload
const DefaultUploadTimeout = 10 * time.Second

// S3Config describes an S3-compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	ACL       string
	Prefix    string
}

// Enabled reports whether enough is configured to upload
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3Sink uploads renders to an S3-compatible bucket
type S3Sink struct {
	client  s3iface.S3API
	config  S3Config
	timeout time.Duration
}

// NewS3Sink creates a session for the configured endpoint
func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	if !cfg.Enabled() {
		return nil, errors.New("s3 bucket not configured")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return newS3SinkWithClient(s3.New(sess), cfg), nil
}

func newS3SinkWithClient(client s3iface.S3API, cfg S3Config) *S3Sink {
	return &S3Sink{client: client, config: cfg, timeout: DefaultUploadTimeout}
}

// ObjectKey applies the configured prefix to key
func (s *S3Sink) ObjectKey(key string) string {
	if s.config.Prefix == "" {
		return key
	}
	return s.config.Prefix + "/" + key
}

// Put uploads data and returns its s3:// location
func (s *S3Sink) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	objectKey := s.ObjectKey(key)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if s.config.ACL != "" {
		input.ACL = aws.String(s.config.ACL)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.config.Bucket, objectKey), nil
}
