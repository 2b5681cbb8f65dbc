package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo represents metadata about a stored object
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
	ContentType  string
	Metadata     map[string]string
}

// ObjectStore is read access to a bucket of objects.
type ObjectStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	List(ctx context.Context, prefix string, options ...ListOption) ([]ObjectInfo, error)
}

// ListOption allows customizing List operations
type ListOption func(*ListOptions)

// ListOptions contains configuration for List operations
type ListOptions struct {
	// Recursive lists every key under the prefix. When false only keys
	// directly under it are returned.
	Recursive bool
	// MaxKeys stops listing after this many objects (0 for no limit)
	MaxKeys int
}

// NewListOptions applies options over the defaults.
func NewListOptions(options ...ListOption) *ListOptions {
	opts := &ListOptions{Recursive: true}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}

// WithRecursive sets whether List descends below the prefix
func WithRecursive(recursive bool) ListOption {
	return func(o *ListOptions) {
		o.Recursive = recursive
	}
}

// WithMaxKeys limits the number of objects returned
func WithMaxKeys(max int) ListOption {
	return func(o *ListOptions) {
		o.MaxKeys = max
	}
}
