package storage

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/beam-cloud/stego/pkg/common"
)

// Storage reads and writes whole PNG objects by key. For local storage
// the key is a filesystem path; for S3 it is the object key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

type StorageOpts struct {
	Credentials common.S3Credentials

	// HTTPClient overrides the AWS SDK transport. Used by tests.
	HTTPClient *http.Client
}

// NewStorage resolves path into a backend and a backend-local key.
// Paths of the form s3://bucket/key select the S3 backend; region and
// endpoint come from the environment, the same way the SDK would pick
// them up. Everything else is a local file path.
func NewStorage(path string, opts StorageOpts) (Storage, string, error) {
	if !strings.HasPrefix(path, "s3://") {
		return NewLocalStorage(), path, nil
	}

	trimmed := strings.TrimPrefix(path, "s3://")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return nil, "", fmt.Errorf("invalid s3 path %q: want s3://bucket/key", path)
	}

	info := common.S3StorageInfo{
		Bucket:         bucket,
		Key:            key,
		Region:         os.Getenv("AWS_REGION"),
		Endpoint:       os.Getenv("AWS_ENDPOINT_URL"),
		ForcePathStyle: os.Getenv("AWS_S3_FORCE_PATH_STYLE") == "true",
	}

	s, err := NewS3Storage(info, S3StorageOpts{
		AccessKey:  opts.Credentials.AccessKey,
		SecretKey:  opts.Credentials.SecretKey,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return nil, "", err
	}

	return s, key, nil
}
