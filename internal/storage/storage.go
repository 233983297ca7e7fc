// Package storage defines the object-store capability the gateway writes to
// and serves from. Swap implementations by changing the concrete type
// injected at startup — the MinIO implementation works with any
// S3-compatible provider (MinIO, ArvanCloud, AWS S3).
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when no object exists under the requested key.
var ErrNotFound = errors.New("storage: object not found")

// ObjectInfo carries the client-visible headers stored alongside an object.
type ObjectInfo struct {
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time

	CacheControl       string
	ContentDisposition string
	ContentEncoding    string
	ContentLanguage    string
}

// Object is a stored body together with its headers. Callers must close Body.
type Object struct {
	Info ObjectInfo
	Body io.ReadCloser
}

// Storage is the interface for writing and reading stored objects.
type Storage interface {
	// Put writes body under key with the given sidecar metadata. The write
	// is a single atomic operation; there is nothing to roll back.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, metadata map[string]string) error
	// Get returns the object stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Object, error)
	// Stat returns the object's headers without its body, or ErrNotFound.
	Stat(ctx context.Context, key string) (*ObjectInfo, error)
}
