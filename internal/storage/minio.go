package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"notepilot/internal/config"
)

const bucketCheckTimeout = 10 * time.Second

// s3Archive writes to one bucket through minio-go. It is safe for concurrent use.
type s3Archive struct {
	client *minio.Client
	bucket string
}

// validate reports every missing field at once.
func validate(cfg config.ArchiveConfig) error {
	var errs []error
	if cfg.Endpoint == "" {
		errs = append(errs, errors.New("archive endpoint is required"))
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		errs = append(errs, errors.New("archive credentials are required"))
	}
	if cfg.Bucket == "" {
		errs = append(errs, errors.New("archive bucket is required"))
	}
	return errors.Join(errs...)
}

func clientOptions(cfg config.ArchiveConfig, transport http.RoundTripper) *minio.Options {
	opts := &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	return opts
}

// NewMinIO connects to the archive endpoint and creates the bucket when it is
// missing. A nil transport uses the minio-go default.
func NewMinIO(ctx context.Context, cfg config.ArchiveConfig, transport http.RoundTripper) (Storage, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	cli, err := minio.New(cfg.Endpoint, clientOptions(cfg, transport))
	if err != nil {
		return nil, fmt.Errorf("create archive client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &s3Archive{client: cli, bucket: cfg.Bucket}, nil
}

func (a *s3Archive) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	uploaded, err := a.client.PutObject(ctx, a.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	return ObjectInfo{
		Key:         uploaded.Key,
		Size:        uploaded.Size,
		ETag:        uploaded.ETag,
		ContentType: opt.ContentType,
	}, nil
}
