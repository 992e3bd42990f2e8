// Package storage keeps uploaded documents in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/justsurfingit/job-search-tracker/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the subset of bucket operations uploads need.
type ObjectStore interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, path string) error
	PublicURL(path string) string
}

type MinioStore struct {
	client *minio.Client
	bucket string
	config config.StorageConfig
}

func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: "us-east-1",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Put overwrites any object already stored at path.
func (s *MinioStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

func (s *MinioStore) Remove(ctx context.Context, path string) error {
	err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// PublicURL returns the address the object is served from. The bucket must
// allow anonymous reads.
func (s *MinioStore) PublicURL(path string) string {
	if s.config.PublicURL != "" {
		return strings.TrimRight(s.config.PublicURL, "/") + "/" + path
	}
	protocol := "http"
	if s.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.config.Endpoint, s.bucket, path)
}
