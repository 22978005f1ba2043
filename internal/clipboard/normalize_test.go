package clipboard

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTextPlain(t *testing.T) {
	content, err := Normalize(Text{Value: "just some words"})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", content.MediaType)
	assert.Equal(t, []byte("just some words"), content.Data)
}

func TestNormalizeTextURL(t *testing.T) {
	for _, s := range []string{
		"https://a.test/",
		"http://example.com/path?q=1",
		"mailto:someone@example.com",
	} {
		content, err := Normalize(Text{Value: s})
		require.NoError(t, err)
		assert.Equal(t, MediaTypeURIList, content.MediaType, s)
		assert.Equal(t, []byte(s), content.Data)
	}
}

func TestNormalizeTextNotQuiteURL(t *testing.T) {
	for _, s := range []string{
		"hello world",
		"example.com",     // no scheme
		"not a url: true", // spaces
	} {
		content, err := Normalize(Text{Value: s})
		require.NoError(t, err)
		assert.Equal(t, "text/plain", content.MediaType, s)
	}
}

func TestNormalizeTextEmpty(t *testing.T) {
	_, err := Normalize(Text{Value: ""})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNormalizeNilVariant(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNormalizeImage(t *testing.T) {
	// 2x1 image: one red pixel, one transparent pixel
	img := Image{
		Pix:    []byte{255, 0, 0, 255, 0, 0, 0, 0},
		Width:  2,
		Height: 1,
	}

	content, err := Normalize(img)
	require.NoError(t, err)
	assert.Equal(t, "image/png", content.MediaType)

	decoded, err := png.Decode(bytes.NewReader(content.Data))
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.Equal(t, 2, bounds.Dx())
	assert.Equal(t, 1, bounds.Dy())
}

func TestNormalizeImageBadBuffer(t *testing.T) {
	_, err := Normalize(Image{Pix: []byte{1, 2, 3}, Width: 2, Height: 1})
	assert.Error(t, err)
}

func TestNormalizeFileReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.png")
	payload := []byte("not really a png, content is opaque")
	require.NoError(t, os.WriteFile(path, payload, 0600))

	content, err := Normalize(Files{Paths: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, "image/png", content.MediaType)
	assert.Equal(t, payload, content.Data)
}

func TestNormalizeFileTakesFirstExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0600))

	content, err := Normalize(Files{Paths: []string{
		filepath.Join(dir, "missing.txt"),
		path,
	}})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", content.MediaType)
}

func TestNormalizeFileUnknownExtension(t *testing.T) {
	dir := t.TempDir()

	noExt := filepath.Join(dir, "payload")
	require.NoError(t, os.WriteFile(noExt, []byte("x"), 0600))
	content, err := Normalize(Files{Paths: []string{noExt}})
	require.NoError(t, err)
	assert.Equal(t, DefaultMediaType, content.MediaType)

	weird := filepath.Join(dir, "payload.qqqq")
	require.NoError(t, os.WriteFile(weird, []byte("x"), 0600))
	content, err = Normalize(Files{Paths: []string{weird}})
	require.NoError(t, err)
	assert.Equal(t, DefaultMediaType, content.MediaType)
}

func TestNormalizeFileNoneExist(t *testing.T) {
	_, err := Normalize(Files{Paths: []string{filepath.Join(t.TempDir(), "gone")}})
	assert.Error(t, err)
}

func TestNormalizeFileSchemeText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.png")
	payload := []byte{0x89, 'P', 'N', 'G'}
	require.NoError(t, os.WriteFile(path, payload, 0600))

	content, err := Normalize(Text{Value: "file://" + path})
	require.NoError(t, err)
	assert.Equal(t, "image/png", content.MediaType)
	assert.Equal(t, payload, content.Data)
}
