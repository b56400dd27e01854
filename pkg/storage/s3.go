package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/beam-cloud/ristretto"
	"github.com/rs/zerolog/log"

	"github.com/beam-cloud/stego/pkg/common"
)

const s3CacheMaxCost = 256 * 1024 * 1024 // 256MB of cached objects

// S3Storage reads and writes PNG objects in a bucket. Downloads are
// fronted by an in-memory ristretto cache so repeated decode/print
// runs against the same object do not refetch it.
type S3Storage struct {
	svc    *s3.Client
	bucket string
	cache  *ristretto.Cache[string, []byte]
}

type S3StorageOpts struct {
	AccessKey  string
	SecretKey  string
	HTTPClient *http.Client
}

func NewS3Storage(info common.S3StorageInfo, opts S3StorageOpts) (*S3Storage, error) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if opts.AccessKey != "" && opts.SecretKey != "" {
		accessKey = opts.AccessKey
		secretKey = opts.SecretKey
	}

	cfg, err := getAWSConfig(accessKey, secretKey, info.Region, info.Endpoint, opts.HTTPClient)
	if err != nil {
		return nil, err
	}

	svc := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if info.ForcePathStyle {
			o.UsePathStyle = true
		}
	})

	// Check to see if we have access to the bucket
	_, err = svc.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: aws.String(info.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot access bucket <%s>: %v", info.Bucket, err)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e5,
		MaxCost:     s3CacheMaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &S3Storage{
		svc:    svc,
		bucket: info.Bucket,
		cache:  cache,
	}, nil
}

func getAWSConfig(accessKey string, secretKey string, region string, endpoint string, httpClient *http.Client) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	if endpoint != "" {
		endpointResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL: endpoint,
			}, nil
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(endpointResolver))
	}

	if accessKey != "" && secretKey != "" {
		provider := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(provider))
	}

	if httpClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(httpClient))
	}

	return config.LoadDefaultConfig(context.TODO(), loadOpts...)
}

func (s *S3Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if cached, found := s.cache.Get(key); found {
		log.Debug().Msgf("Cache hit for <%s>", key)
		out := make([]byte, len(cached))
		copy(out, cached)
		return out, nil
	}

	resp, err := s.svc.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object <%s>: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body <%s>: %w", key, err)
	}

	cached := make([]byte, len(data))
	copy(cached, data)
	s.cache.Set(key, cached, int64(len(cached)))

	return data, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte) error {
	length := int64(len(data))

	uploader := manager.NewUploader(s.svc)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: &length,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object <%s>: %w", key, err)
	}

	// Stale reads after a Put would be surprising, so drop the entry
	// rather than update it.
	s.cache.Del(key)

	return nil
}
