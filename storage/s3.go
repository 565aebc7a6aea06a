package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store serves objects from one S3 bucket.
type S3Store struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	publicBase string
}

// NewS3Store wraps client. publicBase is the URL root that precedes the
// bucket name for public reads; empty derives the regional endpoint.
func NewS3Store(client *s3.Client, region, bucket, publicBase string) *S3Store {
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	return &S3Store{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (s *S3Store) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *S3Store) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, escapePath(path))
}

func (s *S3Store) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s to bucket %s: %w", path, s.bucket, err)
	}
	return nil
}
