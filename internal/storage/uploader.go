// Package storage uploads payment-proof images to an S3-compatible object
// store and hands back the public URL persisted on the registration.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ProofUploader stores a proof image stream and returns a URL referencing
// it.  Implementations present the operation as a single blocking call; the
// caller bounds it with a context deadline.
type ProofUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
}

// MinioUploader implements ProofUploader against MinIO or any S3-compatible
// endpoint.
type MinioUploader struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewMinioUploader connects to the object store and makes sure the target
// bucket exists.
func NewMinioUploader(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("object store: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("object store: create bucket: %w", err)
		}
	}
	return &MinioUploader{client: client, endpoint: endpoint, bucket: bucket, useSSL: useSSL}, nil
}

// Upload streams one proof image into the bucket under a collision-free
// object key and returns its URL.  The original filename only contributes
// its extension.
func (u *MinioUploader) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("proofs/%d-%s%s",
		time.Now().UTC().Unix(),
		gonanoid.MustGenerate("abcdefghijklmnopqrstuvwxyz0123456789", 10),
		path.Ext(filename),
	)
	_, err := u.client.PutObject(ctx, u.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("object store: put: %w", err)
	}
	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.endpoint, u.bucket, key), nil
}
