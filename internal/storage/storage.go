// Package storage archives uploaded source files in S3-compatible object
// storage (MinIO, AWS S3 or the Supabase Storage S3 endpoint). Only the bytes
// the client sent are stored; extracted or cleaned text never is.
package storage

import (
	"context"
	"io"
)

// PutObjectOptions describes an object being archived. Size is the exact byte
// count, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the backend reports after a successful write.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is the archive backend.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
}
