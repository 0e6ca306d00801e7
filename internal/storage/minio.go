package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rentfolio/backend/internal/config"
	"github.com/rentfolio/backend/pkg/logger"
)

// MinIOStore implements Store against a MinIO/S3 bucket for deployments where
// the document root lives on network object storage instead of a local disk.
// Buckets are flat, so MakeDirectory is a no-op kept for contract parity.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

func (m *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", m.bucket, err)
	}
	return nil
}

func (m *MinIOStore) Put(ctx context.Context, path string, data []byte) error {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error("minio_put_failed", err, map[string]interface{}{
			"path":   path,
			"size":   len(data),
			"bucket": m.bucket,
		})
		return &Error{Op: "put", Path: path, Err: err}
	}
	return nil
}

func (m *MinIOStore) Get(ctx context.Context, path string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, &Error{Op: "get", Path: path, Err: err}
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		logger.Error("minio_get_failed", err, map[string]interface{}{
			"path":   path,
			"bucket": m.bucket,
		})
		return nil, &Error{Op: "get", Path: path, Err: err}
	}
	return data, nil
}

func (m *MinIOStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, &Error{Op: "stat", Path: path, Err: err}
	}
	return true, nil
}

func (m *MinIOStore) Delete(ctx context.Context, path string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		logger.Error("minio_delete_failed", err, map[string]interface{}{
			"path":   path,
			"bucket": m.bucket,
		})
		return &Error{Op: "delete", Path: path, Err: err}
	}
	return nil
}

func (m *MinIOStore) MakeDirectory(_ context.Context, _ string) error {
	return nil
}
