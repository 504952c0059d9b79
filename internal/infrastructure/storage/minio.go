package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config captures the settings for the MinIO-backed invoice store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base under which objects are
	// served, e.g. "https://files.example.com".
	PublicURL string
}

// Connect initialises a MinIO client and ensures the bucket exists.
func Connect(ctx context.Context, cfg Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}
	return client, nil
}

// InvoiceStore stores invoice files in a MinIO bucket under keys namespaced
// by project id and upload timestamp.
type InvoiceStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewInvoiceStore(client *minio.Client, bucket, publicURL string) *InvoiceStore {
	return &InvoiceStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Upload stores the file and returns its public URL.
func (s *InvoiceStore) Upload(ctx context.Context, projectID uuid.UUID, filename, contentType string, size int64, content io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%d-%s", projectID, time.Now().Unix(), sanitizeFilename(filename))

	_, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload invoice: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

// Remove deletes the object behind a URL previously returned by Upload.
// URLs that do not belong to this store are ignored.
func (s *InvoiceStore) Remove(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	key := strings.TrimPrefix(url, prefix)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove invoice: %w", err)
	}
	return nil
}

// sanitizeFilename strips path separators so uploads cannot escape their
// project prefix.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "invoice.pdf"
	}
	return name
}
