package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shortclip/shortclip/internal/fxhash"
	"github.com/shortclip/shortclip/internal/metadata"
)

const (
	// DefaultDir is the contents directory relative to the working directory
	DefaultDir = "contents"

	// MetadataExt is the extension of the sidecar metadata file
	MetadataExt = ".json"

	// FilePermissions for object and metadata files
	FilePermissions = 0644

	// DirPermissions for the contents directory
	DirPermissions = 0755
)

// FS implements Store on a local directory. Each object occupies two
// sibling files: <id> holding the raw bytes and <id>.json holding the
// metadata record.
type FS struct {
	dir string
}

// NewFS creates a filesystem store rooted at dir (DefaultDir if empty).
func NewFS(dir string) *FS {
	if dir == "" {
		dir = DefaultDir
	}
	return &FS{dir: dir}
}

// Type returns the backend type
func (s *FS) Type() BackendType {
	return BackendFS
}

// Dir returns the contents directory
func (s *FS) Dir() string {
	return s.dir
}

// Init creates the contents directory if it doesn't exist
func (s *FS) Init(ctx context.Context) error {
	return os.MkdirAll(s.dir, DirPermissions)
}

// Close releases resources (no-op for the filesystem store)
func (s *FS) Close() error {
	return nil
}

func (s *FS) dataPath(id string) string {
	return filepath.Join(s.dir, id)
}

// Put writes the metadata sidecar first and the data file second, so a
// crash in between leaves a record that Get treats as absent rather than
// an object with no content type.
func (s *FS) Put(ctx context.Context, data []byte, meta metadata.Metadata) (string, bool, error) {
	id := fxhash.ID(data)
	dataPath := s.dataPath(id)

	if _, err := os.Stat(dataPath); err == nil {
		return id, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("stat %s: %w", dataPath, err)
	}

	if err := s.Init(ctx); err != nil {
		return "", false, err
	}

	encoded, err := meta.Encode()
	if err != nil {
		return "", false, fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(dataPath+MetadataExt, encoded, FilePermissions); err != nil {
		return "", false, fmt.Errorf("write metadata: %w", err)
	}
	if err := os.WriteFile(dataPath, data, FilePermissions); err != nil {
		return "", false, fmt.Errorf("write data: %w", err)
	}

	return id, true, nil
}

// Get lists the contents directory and returns the entry whose name equals
// id exactly. The match is case-sensitive regardless of the underlying
// filesystem. Metadata is loaded before the data so a half-written object
// surfaces as ErrNotFound, never as a body with wrong headers.
func (s *FS) Get(ctx context.Context, id string) ([]byte, metadata.Metadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, metadata.Metadata{}, ErrNotFound
		}
		return nil, metadata.Metadata{}, fmt.Errorf("read contents dir: %w", err)
	}

	for _, entry := range entries {
		if entry.Name() != id {
			continue
		}

		dataPath := s.dataPath(entry.Name())

		encoded, err := os.ReadFile(dataPath + MetadataExt)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, metadata.Metadata{}, ErrNotFound
			}
			return nil, metadata.Metadata{}, fmt.Errorf("read metadata: %w", err)
		}
		meta, err := metadata.Decode(encoded)
		if err != nil {
			return nil, metadata.Metadata{}, err
		}

		data, err := os.ReadFile(dataPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, metadata.Metadata{}, ErrNotFound
			}
			return nil, metadata.Metadata{}, fmt.Errorf("read data: %w", err)
		}

		return data, meta, nil
	}

	return nil, metadata.Metadata{}, ErrNotFound
}
