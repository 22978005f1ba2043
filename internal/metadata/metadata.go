package metadata

import (
	"encoding/json"
	"errors"
	"time"
)

// CurrentVersion is the current metadata record version
const CurrentVersion = 1

var (
	ErrInvalidVersion = errors.New("unsupported metadata version")
	ErrInvalidRecord  = errors.New("invalid metadata record")
)

// Metadata is the sidecar record stored next to each object.
// It is created once at upload time and never mutated.
type Metadata struct {
	Version     int     `json:"version"`
	CreatedAt   uint64  `json:"created_at"`
	ExpiresAt   *uint64 `json:"expires_at"`
	Author      string  `json:"author"`
	ContentType string  `json:"content_type"`
}

// New creates a metadata record stamped with the current time.
func New(author, contentType string) Metadata {
	return Metadata{
		Version:     CurrentVersion,
		CreatedAt:   uint64(time.Now().Unix()),
		Author:      author,
		ContentType: contentType,
	}
}

// Encode serializes the record to its canonical JSON shape.
func (m Metadata) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserializes a JSON metadata record.
func Decode(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, ErrInvalidRecord
	}
	if m.Version > CurrentVersion {
		return Metadata{}, ErrInvalidVersion
	}
	return m, nil
}
