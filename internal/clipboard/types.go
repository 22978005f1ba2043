// Package clipboard turns whatever the OS clipboard holds into a
// normalized payload ready for upload.
package clipboard

import (
	"errors"
)

// ErrEmpty is returned when the clipboard holds nothing usable.
var ErrEmpty = errors.New("clipboard is empty")

// Variant is the raw clipboard content as read from the OS, before
// normalization. Exactly one of the concrete types below is produced.
type Variant interface {
	isVariant()
}

// Image is a raster image as a raw RGBA buffer, 4 bytes per pixel.
type Image struct {
	Pix    []byte
	Width  int
	Height int
}

// Files is a list of file paths referenced by the clipboard.
type Files struct {
	Paths []string
}

// Text is plain unicode text.
type Text struct {
	Value string
}

func (Image) isVariant() {}
func (Files) isVariant() {}
func (Text) isVariant()  {}

// Content is the normalized payload: an IANA media type and the bytes to
// upload. Data is never empty.
type Content struct {
	MediaType string
	Data      []byte
}

// Adapter is the platform capability interface over the OS clipboard.
type Adapter interface {
	// Read probes the clipboard and returns the highest-priority variant
	// available, or ErrEmpty.
	Read() (Variant, error)

	// WriteText replaces the clipboard text content. Implementations must
	// keep clipboard ownership long enough for the OS to persist the value.
	WriteText(text string) error
}
