package store

import (
	"fmt"
)

// New creates a new store based on the configuration
func New(cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = &Config{Type: BackendFS}
	}

	switch cfg.Type {
	case BackendFS, "":
		return NewFS(cfg.Dir), nil

	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 store requires a bucket")
		}
		return NewS3(cfg.S3Bucket, cfg.S3Prefix, cfg.S3Region), nil

	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
