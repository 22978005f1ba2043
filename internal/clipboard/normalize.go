package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMediaType is used for files whose extension has no known mapping
const DefaultMediaType = "application/octet-stream"

// MediaTypeURIList marks text payloads that are a single absolute URL
const MediaTypeURIList = "text/uri-list"

const fileScheme = "file://"

// Normalize turns a clipboard variant into the payload to upload:
// images become PNG, file references become the file's bytes with a media
// type guessed from the extension, and text becomes text/plain unless it
// parses as an absolute URL.
func Normalize(v Variant) (Content, error) {
	switch v := v.(type) {
	case Image:
		return normalizeImage(v)
	case Files:
		return normalizeFiles(v.Paths)
	case Text:
		return normalizeText(v.Value)
	case nil:
		return Content{}, ErrEmpty
	default:
		return Content{}, fmt.Errorf("unknown clipboard variant %T", v)
	}
}

func normalizeImage(img Image) (Content, error) {
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*4 {
		return Content{}, fmt.Errorf("invalid RGBA buffer: %dx%d with %d bytes", img.Width, img.Height, len(img.Pix))
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(rgba.Pix, img.Pix)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return Content{}, fmt.Errorf("encode png: %w", err)
	}

	return Content{MediaType: "image/png", Data: buf.Bytes()}, nil
}

// normalizeFiles uploads the first existing path. Multi-file uploads are a
// known limitation; the rest of the list is ignored.
func normalizeFiles(paths []string) (Content, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return Content{}, fmt.Errorf("read clipboard file %s: %w", path, err)
		}
		if len(data) == 0 {
			return Content{}, ErrEmpty
		}

		return Content{MediaType: mediaTypeForPath(path), Data: data}, nil
	}

	return Content{}, fmt.Errorf("no clipboard file exists: %v", paths)
}

func normalizeText(text string) (Content, error) {
	if text == "" {
		return Content{}, ErrEmpty
	}

	if strings.HasPrefix(text, fileScheme) {
		return normalizeFiles([]string{strings.TrimPrefix(text, fileScheme)})
	}

	mediaType := "text/plain"
	if isAbsoluteURL(text) {
		mediaType = MediaTypeURIList
	}

	return Content{MediaType: mediaType, Data: []byte(text)}, nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// mediaTypeForPath maps a file extension to a media type, without any
// charset parameter, falling back to application/octet-stream.
func mediaTypeForPath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return DefaultMediaType
	}

	mediaType := mime.TypeByExtension(ext)
	if mediaType == "" {
		return DefaultMediaType
	}
	if i := strings.Index(mediaType, ";"); i != -1 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	return mediaType
}
