// Package store provides the content-addressed object store. Objects are
// keyed by the Fx hash of their bytes, so identical payloads share one id
// and uploads deduplicate for free.
package store

import (
	"context"
	"errors"

	"github.com/shortclip/shortclip/internal/metadata"
)

// BackendType identifies the type of object store backend
type BackendType string

const (
	BackendFS BackendType = "fs"
	BackendS3 BackendType = "s3"
)

// Common errors
var (
	ErrNotFound      = errors.New("object not found")
	ErrNotConfigured = errors.New("store not configured")
)

// Store defines the interface for object store backends
type Store interface {
	// Put stores data under its content-derived id. If an object with the
	// same id already exists, nothing is written and created is false;
	// the first writer's metadata wins.
	Put(ctx context.Context, data []byte, meta metadata.Metadata) (id string, created bool, err error)

	// Get retrieves an object and its metadata by exact id.
	// Returns ErrNotFound if either the data or the metadata is absent.
	Get(ctx context.Context, id string) ([]byte, metadata.Metadata, error)

	// Init prepares the backend (creates directories, validates credentials)
	Init(ctx context.Context) error

	// Close releases any resources held by the backend
	Close() error

	// Type returns the backend type
	Type() BackendType
}

// Config holds configuration for creating stores
type Config struct {
	Type BackendType
	Dir  string // For fs: contents directory

	// S3-specific
	S3Bucket string
	S3Prefix string
	S3Region string
}
