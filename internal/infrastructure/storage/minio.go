package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/johnquangdev/mom-service/pkg/config"
)

// MinIOClient archives generated MOM documents in a private bucket
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // e.g. https://minio.example.com when MinIO sits behind a proxy
	urlExpiry time.Duration
	logger    *zap.Logger
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(cfg *config.StorageConfig, logger *zap.Logger) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		urlExpiry: cfg.URLExpiry,
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket when missing. Objects stay private and are
// shared through presigned URLs only.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ObjectPrefix is the key prefix under which a record's artifacts live
func ObjectPrefix(recordID string) string {
	return path.Join("mom", recordID) + "/"
}

// Archive uploads the given local files under the record's prefix and returns
// a presigned URL for the first one (the DOCX). Empty paths are skipped.
func (m *MinIOClient) Archive(ctx context.Context, recordID string, paths ...string) (string, error) {
	var first string
	for _, p := range paths {
		if p == "" {
			continue
		}
		objectName := ObjectPrefix(recordID) + filepath.Base(p)
		if err := m.UploadFile(ctx, objectName, p); err != nil {
			return "", err
		}
		if first == "" {
			first = objectName
		}
	}
	if first == "" {
		return "", nil
	}
	return m.GetFileURL(ctx, first, m.urlExpiry)
}

// UploadFile uploads a local file, retrying transient failures
func (m *MinIOClient) UploadFile(ctx context.Context, objectName, filePath string) error {
	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectFile(filePath); err == nil {
		contentType = mtype.String()
	}

	upload := func() error {
		_, err := m.client.FPutObject(ctx, m.bucket, objectName, filePath, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if os.IsNotExist(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	notify := func(err error, wait time.Duration) {
		if m.logger != nil {
			m.logger.Warn("⚠️ Upload failed, retrying",
				zap.String("object", objectName),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}
	}
	if err := backoff.RetryNotify(upload, policy, notify); err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	if m.logger != nil {
		m.logger.Info("☁️ Artifact archived",
			zap.String("object", objectName),
			zap.String("content_type", contentType),
		)
	}
	return nil
}

// GetFileURL gets a presigned URL for accessing a file
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// Swap the internal endpoint for the public one, keeping /bucket/object?query
	if m.publicURL != "" {
		return m.publicURL + u.RequestURI(), nil
	}
	return u.String(), nil
}

// ListFiles lists object keys under prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}

	return files, nil
}

// Remove deletes every archived artifact of a record
func (m *MinIOClient) Remove(ctx context.Context, recordID string) error {
	keys, err := m.ListFiles(ctx, ObjectPrefix(recordID))
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}
